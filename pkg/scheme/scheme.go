// Package scheme recognizes the generic URI scheme prefix shared by the
// input resolver and the navigation router.
package scheme

import "strings"

// Parse splits s into a lowercase scheme name and the remainder after the
// colon. The scheme must start with an ASCII letter followed by letters,
// digits, "+", "." or "-".
func Parse(s string) (name string, rest string, ok bool) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isAlpha(c):
		case i > 0 && (isDigit(c) || c == '+' || c == '.' || c == '-'):
		case i > 0 && c == ':':
			return strings.ToLower(s[:i]), s[i+1:], true
		default:
			return "", "", false
		}
	}
	return "", "", false
}

// Of returns the lowercase scheme of s, or "" when s has none.
func Of(s string) string {
	name, _, _ := Parse(s)
	return name
}

// HasAuthority reports whether s carries a scheme followed by "//".
func HasAuthority(s string) bool {
	_, rest, ok := Parse(s)
	return ok && strings.HasPrefix(rest, "//")
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
