package ir

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// AttrHeading is the reserved heading of a node's attribute node.
// It is never a valid user heading.
const AttrHeading = "$"

// ValidateHeading normalizes a heading to NFC and checks its characters.
//
// A heading is non-empty and made of lowercase letters, digits and '_'.
// Returns the normalized heading, or an InvalidHeading error naming the
// first offending rune.
func ValidateHeading(heading string) (string, error) {
	h := norm.NFC.String(heading)
	if h == "" {
		return "", NewInvalidHeading(heading, "heading is empty")
	}
	for i, r := range h {
		if !isHeadingRune(r) {
			return "", NewInvalidHeading(heading, "invalid character %q at offset %d", r, i)
		}
	}
	return h, nil
}

// IsValidHeading reports whether ValidateHeading would accept heading.
func IsValidHeading(heading string) bool {
	_, err := ValidateHeading(heading)
	return err == nil
}

func isHeadingRune(r rune) bool {
	switch {
	case r == '_':
		return true
	case unicode.IsDigit(r):
		return true
	case unicode.IsLetter(r):
		return unicode.IsLower(r) || !unicode.IsUpper(r)
	default:
		return false
	}
}

// FormatTitle derives a display title from a heading: underscores become
// spaces and each word is title-cased. "hello_world" -> "Hello World".
func FormatTitle(heading string) string {
	words := strings.Fields(strings.ReplaceAll(heading, "_", " "))
	// Casers carry state, so each call gets its own.
	return cases.Title(language.English).String(strings.Join(words, " "))
}
