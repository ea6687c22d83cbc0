package sanitize

import (
	"regexp"
	"strings"
)

var profileNameRe = regexp.MustCompile(`^[A-Za-z0-9 -]+$`)

// ValidProfileName reports whether name is acceptable as a child profile
// display name. Conservative allow-list, not a deny-list: only letters,
// digits, spaces, and hyphens; trimmed length 2..50; no run of two or more
// spaces or hyphens. Anything not explicitly permitted fails closed.
func ValidProfileName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 2 || len(trimmed) > 50 {
		return false
	}
	if !profileNameRe.MatchString(trimmed) {
		return false
	}
	if strings.Contains(trimmed, "  ") || strings.Contains(trimmed, "--") {
		return false
	}
	return true
}
