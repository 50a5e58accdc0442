package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@example.com", "x_1@sub.domain.org"}
	for _, e := range valid {
		assert.True(t, IsValidEmail(e), e)
	}

	invalid := []string{"", "plain", "@nodomain.com", "user@", "user@domain", "a b@c.com"}
	for _, e := range invalid {
		assert.False(t, IsValidEmail(e), e)
	}
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("0191d8a0-1234-7abc-9def-0123456789ab"))
	assert.True(t, IsValidUUID("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
	// Case-insensitive
	assert.True(t, IsValidUUID("6BA7B810-9DAD-11D1-80B4-00C04FD430C8"))

	assert.False(t, IsValidUUID(""))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID("6ba7b810-9dad-11d1-80b4-00c04fd430c"))
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2025-01-13")
	assert.True(t, ok)

	for _, bad := range []string{"", "13-01-2025", "2025/01/13", "2025-13-01"} {
		_, ok := IsValidDate(bad)
		assert.False(t, ok, bad)
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "role", Message: "required"},
	}
	assert.Equal(t, map[string]string{"email": "invalid", "role": "required"}, errs.ToMap())
	assert.Equal(t, "email: invalid; role: required", errs.Error())
}
