package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/dashauth/internal/common"
)

func TestHTTPRegister_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/register", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req registerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, registerRequest{Username: "alice", Email: "a@x.com", Password: "secret1"}, req)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"accessToken":"at","refreshToken":"rt","user":{"id":"1","username":"alice","email":"a@x.com"}}`))
	}))
	defer srv.Close()

	h := NewHTTPAuthService(srv.URL)

	s, err := h.Register(context.Background(), "alice", "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "at", s.AccessToken)
	assert.Equal(t, "rt", s.RefreshToken)
	assert.Equal(t, "alice", s.User.Username)
}

func TestHTTPSignIn_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/signin", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accessToken":"at","user":{"id":"1","username":"alice","email":"a@x.com"}}`))
	}))
	defer srv.Close()

	h := NewHTTPAuthService(srv.URL)

	s, err := h.SignIn(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "at", s.AccessToken)
	assert.Empty(t, s.RefreshToken)
}

func TestHTTP_ErrorCodesMapToSentinels(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"email exists", http.StatusBadRequest, `{"error":"EMAIL_EXISTS","message":"email exists"}`, common.ErrEmailExists},
		{"username taken", http.StatusBadRequest, `{"error":"USERNAME_TAKEN","message":"username taken"}`, common.ErrUsernameTaken},
		{"user not found", http.StatusNotFound, `{"error":"USER_NOT_FOUND","message":"no such user"}`, common.ErrUserNotFound},
		{"invalid password", http.StatusUnauthorized, `{"error":"INVALID_PASSWORD","message":"wrong password"}`, common.ErrInvalidPassword},
		{"invalid credentials", http.StatusUnauthorized, `{"error":"INVALID_CREDENTIALS","message":"invalid credentials"}`, common.ErrInvalidCredentials},
		{"account locked", http.StatusLocked, `{"error":"ACCOUNT_LOCKED","message":"locked"}`, common.ErrAccountLocked},
		{"too many attempts", http.StatusTooManyRequests, `{"error":"TOO_MANY_ATTEMPTS","message":"slow down"}`, common.ErrTooManyAttempts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			h := NewHTTPAuthService(srv.URL)

			_, err := h.SignIn(context.Background(), "a@x.com", "secret1")
			require.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestHTTP_UnknownCode_KeepsMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"INTERNAL","message":"internal error"}`))
	}))
	defer srv.Close()

	h := NewHTTPAuthService(srv.URL)

	_, err := h.SignIn(context.Background(), "a@x.com", "secret1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INTERNAL")
	assert.Contains(t, err.Error(), "internal error")
}

func TestHTTP_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream gone"))
	}))
	defer srv.Close()

	h := NewHTTPAuthService(srv.URL)

	_, err := h.SignIn(context.Background(), "a@x.com", "secret1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}

func TestHTTP_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	h := NewHTTPAuthService(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.SignIn(ctx, "a@x.com", "secret1")
	require.Error(t, err)
}
