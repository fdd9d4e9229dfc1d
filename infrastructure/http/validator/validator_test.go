package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("driver@fleetora.local"))
	assert.True(t, ValidateEmail("a.b+c@example.co"))

	assert.False(t, ValidateEmail(""))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("missing@tld"))
	assert.False(t, ValidateEmail("@example.com"))
}

func TestValidateRequired(t *testing.T) {
	assert.True(t, ValidateRequired("x"))
	assert.False(t, ValidateRequired(""))
	assert.False(t, ValidateRequired("   "))
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("12345678"))
	assert.False(t, ValidatePassword("1234567"))
	assert.False(t, ValidatePassword(""))
}

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("2024-03-15")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)

	got, ok = ParseDate("2024-03-15T10:30:00Z")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), got)

	_, ok = ParseDate("")
	assert.False(t, ok)
	_, ok = ParseDate("15/03/2024")
	assert.False(t, ok)
}
