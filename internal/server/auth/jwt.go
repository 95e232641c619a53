// Package auth implements token issuance and the credential-verification
// abstraction used by the auth backend.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/dashauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered JWT claims plus the account id.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string
}

// GenerateToken mints an HS256-signed access token for the given account.
func GenerateToken(accountID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		AccountID: accountID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetAccountIDFromToken parses and validates an access token and returns the
// account id from its claims. Expired tokens yield common.ErrInvalidToken.
func GetAccountIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrInvalidToken
		}
		return "", err
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.AccountID, nil
}
