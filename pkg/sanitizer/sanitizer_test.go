package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/landing/pkg/sanitizer"
)

func TestSingleLine(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Jane Doe", sanitizer.SingleLine("  Jane\n\t Doe \r\n"))
	assert.Equal(t, "", sanitizer.SingleLine(" \n "))
}

func TestRemoveControlChars(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "hello\nworld\tok", sanitizer.RemoveControlChars("hel\x00lo\r\nworld\tok\x07"))
	assert.Equal(t, "red text", sanitizer.RemoveControlChars("\x1b[31mred text\x1b[0m"))
}

func TestCollapseBlankLines(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a\n\nb", sanitizer.CollapseBlankLines("a\n\n\n\n\nb"))
	assert.Equal(t, "a\nb", sanitizer.CollapseBlankLines("a\nb"))
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"  Jane.Doe@Example.COM ": "jane.doe@example.com",
		"jane..doe@example.com":   "jane.doe@example.com",
		".jane.@example.com":      "jane@example.com",
		"not-an-email":            "not-an-email",
		"a@b@c":                   "a@b@c",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizer.NormalizeEmail(in), in)
	}
}

func TestMaxLength(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Hal", sanitizer.MaxLength(3)("Halo"))
	assert.Equal(t, "héé", sanitizer.MaxLength(3)("héééé"))
	assert.Equal(t, "ok", sanitizer.MaxLength(10)("ok"))
	assert.Equal(t, "", sanitizer.MaxLength(0)("ok"))
}

func TestCompose(t *testing.T) {
	t.Parallel()

	clean := sanitizer.Compose(sanitizer.RemoveControlChars, sanitizer.Trim, sanitizer.MaxLength(5))
	assert.Equal(t, "hello", clean("  hel\x00lo world  "))
	assert.Equal(t, strings.Repeat("x", 5), sanitizer.Apply(strings.Repeat("x", 50), sanitizer.MaxLength(5)))
}
