package sanitizer

import (
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeKeyword lowercases a token such as a role or payment method.
func NormalizeKeyword(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeNameForComparison is the key used to detect duplicates that differ
// only in case or spacing.
func NormalizeNameForComparison(name string) string {
	return strings.ToLower(TrimAndNormalize(name))
}
