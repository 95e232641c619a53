package common

import "errors"

// Wire codes for classified authentication failures, as carried in the
// {"error": ..., "message": ...} body of the HTTP transport. The mock backend
// and the HTTP client both resolve them back to the sentinels above so that
// form controllers can match with errors.Is regardless of the backend.
const (
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeUsernameTaken      = "USERNAME_TAKEN"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeInvalidPassword    = "INVALID_PASSWORD"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeAccountLocked      = "ACCOUNT_LOCKED"
	CodeTooManyAttempts    = "TOO_MANY_ATTEMPTS"
)

var codeByErr = map[error]string{
	ErrEmailExists:        CodeEmailExists,
	ErrUsernameTaken:      CodeUsernameTaken,
	ErrUserNotFound:       CodeUserNotFound,
	ErrInvalidPassword:    CodeInvalidPassword,
	ErrInvalidCredentials: CodeInvalidCredentials,
	ErrAccountLocked:      CodeAccountLocked,
	ErrTooManyAttempts:    CodeTooManyAttempts,
}

// CodeOf returns the wire code for a classified failure, or "" when err is
// not one of the classified sentinels (wrapped sentinels match too).
func CodeOf(err error) string {
	for sentinel, code := range codeByErr {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return ""
}

// ErrorForCode resolves a wire code back to its sentinel error. Unknown codes
// return nil; the caller decides how to surface unclassified failures.
func ErrorForCode(code string) error {
	for sentinel, c := range codeByErr {
		if c == code {
			return sentinel
		}
	}
	return nil
}
