// Package sanitizer normalizes untrusted text input before validation and
// storage. Every function is a pure string transform so they compose with
// Apply and Compose.
package sanitizer

import (
	"regexp"
	"strings"
	"unicode"
)

// Apply runs value through transforms in order.
func Apply[T any](value T, transforms ...func(T) T) T {
	for _, transform := range transforms {
		value = transform(value)
	}
	return value
}

// Compose returns a reusable pipeline of transforms.
func Compose[T any](transforms ...func(T) T) func(T) T {
	return func(value T) T {
		return Apply(value, transforms...)
	}
}

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	ansiEscape    = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	dotRun        = regexp.MustCompile(`\.{2,}`)
	blankLines    = regexp.MustCompile(`\n{3,}`)
)

// SingleLine collapses every whitespace run, line breaks included, into one space.
func SingleLine(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// RemoveControlChars drops ANSI escapes and control characters other than
// newline and tab. Carriage returns are normalized away.
func RemoveControlChars(s string) string {
	s = ansiEscape.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// CollapseBlankLines keeps at most one empty line between paragraphs.
func CollapseBlankLines(s string) string {
	return blankLines.ReplaceAllString(s, "\n\n")
}

// NormalizeEmail trims and lowercases an address and folds repeated dots in
// the local part. Values without exactly one "@" are only trimmed and lowercased.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}
	local = strings.Trim(dotRun.ReplaceAllString(local, "."), ".")
	return local + "@" + domain
}

// MaxLength truncates s to at most n runes.
func MaxLength(n int) func(string) string {
	return func(s string) string {
		if n <= 0 {
			return ""
		}
		runes := []rune(s)
		if len(runes) <= n {
			return s
		}
		return string(runes[:n])
	}
}
