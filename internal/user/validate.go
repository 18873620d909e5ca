package user

import (
	"errors"
	"net/mail"

	"github.com/cortexsupport/cortex-backend/internal/httputil"
)

var (
	ErrEmailRequired      = errors.New("email is required")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrUsernameRequired   = errors.New("username is required")
	ErrInvalidUsername    = errors.New("username must be between 3 and 50 characters")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 128 characters")
	ErrFullNameTooLong    = errors.New("full name must be at most 100 characters")
)

// validationCodes maps validation failures to machine-readable response codes
var validationCodes = map[error]string{
	ErrEmailRequired:      httputil.CodeEmailRequired,
	ErrInvalidEmailFormat: httputil.CodeInvalidEmailFormat,
	ErrUsernameRequired:   httputil.CodeUsernameRequired,
	ErrInvalidUsername:    httputil.CodeInvalidUsername,
	ErrPasswordRequired:   httputil.CodePasswordRequired,
	ErrPasswordTooShort:   httputil.CodePasswordTooShort,
	ErrPasswordTooLong:    httputil.CodePasswordTooLong,
	ErrFullNameTooLong:    httputil.CodeFullNameTooLong,
}

// ValidationCode returns the response code for a validation failure
func ValidationCode(err error) (string, bool) {
	code, ok := validationCodes[err]
	return code, ok
}

// ValidateEmail checks shape and length of an email address
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if len(email) > 254 {
		return ErrInvalidEmailFormat
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmailFormat
	}
	return nil
}

// ValidateUsername checks the username length bounds
func ValidateUsername(username string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	if len(username) < 3 || len(username) > 50 {
		return ErrInvalidUsername
	}
	return nil
}

// ValidatePassword checks the password length bounds
func ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	if len(password) > 128 {
		return ErrPasswordTooLong
	}
	return nil
}

// ValidateFullName checks the optional display name length
func ValidateFullName(fullName *string) error {
	if fullName != nil && len(*fullName) > 100 {
		return ErrFullNameTooLong
	}
	return nil
}
