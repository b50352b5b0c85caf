package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinLength(t *testing.T) {
	assert.True(t, MinLength("ab", 2))
	assert.True(t, MinLength("  ab  ", 2))
	assert.False(t, MinLength(" a ", 2))
	assert.False(t, MinLength("     ", 2))
	assert.True(t, MinLength("", 0))
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "5551234567", DigitsOnly("(555) 123-4567"))
	assert.Equal(t, "", DigitsOnly("abc-def"))
	assert.Equal(t, "12345", DigitsOnly("1 2 3 4 5"))
}

func TestFormatPhone(t *testing.T) {
	assert.Equal(t, "", FormatPhone(""))
	assert.Equal(t, "(555", FormatPhone("555"))
	assert.Equal(t, "(555) 12", FormatPhone("55512"))
	assert.Equal(t, "(555) 123-4567", FormatPhone("5551234567"))
	assert.Equal(t, "(555) 123-4567", FormatPhone("555-123-4567"))

	// Extra digits beyond ten are dropped
	assert.Equal(t, "(555) 123-4567", FormatPhone("555123456789"))
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("(555) 123-4567"))
	assert.True(t, ValidPhone("15551234567"))
	assert.False(t, ValidPhone("555-1234"))
	assert.False(t, ValidPhone(""))
}

func TestValidEmail(t *testing.T) {
	// The check is deliberately loose: presence of "@" and "." only
	assert.True(t, ValidEmail("a@b.com"))
	assert.True(t, ValidEmail("a.b@c"))
	assert.False(t, ValidEmail("a@b"))
	assert.False(t, ValidEmail("ab.com"))
	assert.False(t, ValidEmail(""))
}

func TestValidEIN(t *testing.T) {
	assert.True(t, ValidEIN("12-3456789"))
	assert.True(t, ValidEIN("123456789"))
	assert.False(t, ValidEIN("12-345678"))
	assert.False(t, ValidEIN(""))
}

func TestValidLocationCount(t *testing.T) {
	assert.True(t, ValidLocationCount("1"))
	assert.True(t, ValidLocationCount(" 25 "))
	assert.False(t, ValidLocationCount("0"))
	assert.False(t, ValidLocationCount("-3"))
	assert.False(t, ValidLocationCount("many"))
	assert.False(t, ValidLocationCount(""))
}

func TestLocationCountValue(t *testing.T) {
	val := LocationCountValue("12")
	if assert.NotNil(t, val) {
		assert.Equal(t, 12, *val)
	}
	assert.Nil(t, LocationCountValue(""))
	assert.Nil(t, LocationCountValue("a dozen"))
}
