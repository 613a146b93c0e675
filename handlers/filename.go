package handlers

import (
	"strings"
)

// sanitizeFilename keeps letters, digits, dots, dashes and underscores.
// Separators become dashes and runs of dashes collapse to one.
func sanitizeFilename(s string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '_', r == '-':
			return r
		case r == ' ', r == '/', r == '\\', r == ':':
			return '-'
		}
		return -1
	}, strings.TrimSpace(s))

	for strings.Contains(mapped, "--") {
		mapped = strings.ReplaceAll(mapped, "--", "-")
	}
	return strings.Trim(mapped, "-.")
}
