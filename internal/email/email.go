// Package email holds the workflow's address check.
package email

import "strings"

// IsValid reports whether s is acceptable as a reporter address: longer than
// five characters and containing '@'. This is deliberately weak — the ticket
// desk follows up by hand, so the check only has to screen out obvious
// mistypes, not enforce RFC 5322. Callers rely on the exact leniency; do not
// tighten it here.
func IsValid(s string) bool {
	return len(s) > 5 && strings.Contains(s, "@")
}
