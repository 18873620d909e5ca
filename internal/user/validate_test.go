package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cortexsupport/cortex-backend/internal/httputil"
)

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateEmail("user@example.com"))

	assert.ErrorIs(t, ValidateEmail(""), ErrEmailRequired)
	assert.ErrorIs(t, ValidateEmail("not-an-email"), ErrInvalidEmailFormat)
	assert.ErrorIs(t, ValidateEmail("@example.com"), ErrInvalidEmailFormat)

	long := strings.Repeat("a", 250) + "@example.com"
	assert.ErrorIs(t, ValidateEmail(long), ErrInvalidEmailFormat)
}

func TestValidateUsername(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateUsername("abc"))
	assert.NoError(t, ValidateUsername(strings.Repeat("x", 50)))

	assert.ErrorIs(t, ValidateUsername(""), ErrUsernameRequired)
	assert.ErrorIs(t, ValidateUsername("ab"), ErrInvalidUsername)
	assert.ErrorIs(t, ValidateUsername(strings.Repeat("x", 51)), ErrInvalidUsername)
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidatePassword("12345678"))
	assert.NoError(t, ValidatePassword(strings.Repeat("p", 128)))

	assert.ErrorIs(t, ValidatePassword(""), ErrPasswordRequired)
	assert.ErrorIs(t, ValidatePassword("1234567"), ErrPasswordTooShort)
	assert.ErrorIs(t, ValidatePassword(strings.Repeat("p", 129)), ErrPasswordTooLong)
}

func TestValidateFullName(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateFullName(nil))

	ok := strings.Repeat("n", 100)
	assert.NoError(t, ValidateFullName(&ok))

	tooLong := strings.Repeat("n", 101)
	assert.ErrorIs(t, ValidateFullName(&tooLong), ErrFullNameTooLong)
}

func TestValidationCode(t *testing.T) {
	t.Parallel()

	code, ok := ValidationCode(ErrPasswordTooShort)
	assert.True(t, ok)
	assert.Equal(t, httputil.CodePasswordTooShort, code)

	_, ok = ValidationCode(ErrNotFound)
	assert.False(t, ok, "non-validation errors have no code mapping")
}
