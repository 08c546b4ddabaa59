// Package slug derives URL slugs from display names.
package slug

import "strings"

// Make lowercases s, drops everything except word characters and spaces,
// then joins the remaining words with hyphens. "Go & Web Dev!" -> "go-web-dev".
func Make(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == ' ':
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), "-")
}
