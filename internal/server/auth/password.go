package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher abstracts credential verification so the service logic does
// not depend on a concrete hashing scheme.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

// BcryptHasher is the production PasswordHasher.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher returns a hasher with the default bcrypt cost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *BcryptHasher) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
