package sanitizer

import (
	"strings"
	"unicode"
)

func Trim(s string) string {
	return strings.TrimSpace(s)
}

func ToLower(s string) string {
	return strings.ToLower(s)
}

// NormalizeEmail trims and lowercases an address. The local part is otherwise
// kept as typed, so two addresses that differ only in dots stay distinct.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RemoveControlChars drops control characters except tab, newline and carriage return.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}

// SingleLine collapses all whitespace runs, including line breaks, into single spaces.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
