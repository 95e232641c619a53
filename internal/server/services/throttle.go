package services

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/dashauth/internal/common"
)

// loginThrottle limits sign-in attempts per email. Two independent rules:
// a sliding-window attempt limit (surfaced as ErrTooManyAttempts, HTTP 429)
// and an account lock after consecutive failures (ErrAccountLocked, 423).
// State is in-memory only; a restart clears all counters.
type loginThrottle struct {
	mu          sync.Mutex
	now         func() time.Time
	maxAttempts int
	window      time.Duration
	maxFailures int
	lockFor     time.Duration
	states      map[string]*throttleState
}

type throttleState struct {
	attempts    []time.Time
	failures    int
	lockedUntil time.Time
}

// newLoginThrottle builds a throttle; maxAttempts <= 0 disables the window
// rule and maxFailures <= 0 disables locking.
func newLoginThrottle(maxAttempts int, window time.Duration, maxFailures int, lockFor time.Duration) *loginThrottle {
	return &loginThrottle{
		now:         time.Now,
		maxAttempts: maxAttempts,
		window:      window,
		maxFailures: maxFailures,
		lockFor:     lockFor,
		states:      make(map[string]*throttleState),
	}
}

// Allow records one sign-in attempt for email and reports whether it may
// proceed. Locked accounts yield common.ErrAccountLocked; exceeding the
// attempt window yields common.ErrTooManyAttempts.
func (t *loginThrottle) Allow(email string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	st := t.states[email]
	if st == nil {
		st = &throttleState{}
		t.states[email] = st
	}

	if now.Before(st.lockedUntil) {
		return common.ErrAccountLocked
	}

	if t.maxAttempts > 0 {
		cutoff := now.Add(-t.window)
		kept := st.attempts[:0]
		for _, at := range st.attempts {
			if at.After(cutoff) {
				kept = append(kept, at)
			}
		}
		st.attempts = kept
		if len(st.attempts) >= t.maxAttempts {
			return common.ErrTooManyAttempts
		}
		st.attempts = append(st.attempts, now)
	}

	return nil
}

// RecordFailure counts one failed credential check; after maxFailures
// consecutive failures the email is locked for lockFor.
func (t *loginThrottle) RecordFailure(email string) {
	if t.maxFailures <= 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.states[email]
	if st == nil {
		st = &throttleState{}
		t.states[email] = st
	}

	st.failures++
	if st.failures >= t.maxFailures {
		st.lockedUntil = t.now().Add(t.lockFor)
		st.failures = 0
	}
}

// Reset clears failure counters after a successful sign-in. The attempt
// window is kept so a success does not reset the rate limit.
func (t *loginThrottle) Reset(email string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if st := t.states[email]; st != nil {
		st.failures = 0
		st.lockedUntil = time.Time{}
	}
}
