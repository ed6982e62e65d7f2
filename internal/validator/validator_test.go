package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidEmail("alice@example.com"))
	assert.True(t, IsValidEmail("a.b+tag@sub.example.co"))

	assert.False(t, IsValidEmail(""))
	assert.False(t, IsValidEmail("no-at-sign"))
	assert.False(t, IsValidEmail("Alice <alice@example.com>"))
	assert.False(t, IsValidEmail("spaces in@example.com"))
}

func TestIsValidPassword(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidPassword("longenough1"))
	assert.False(t, IsValidPassword("short1"))
	assert.False(t, IsValidPassword("lettersonly"))
	assert.False(t, IsValidPassword("12345678"))
}

func TestIsValidName(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidName("Consulting Agreement.pdf"))
	assert.False(t, IsValidName(""))
}
