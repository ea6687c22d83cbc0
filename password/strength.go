// Package password scores guardian password strength for UI feedback. It is a
// policy check only: hashing for storage lives in the pin package, and the
// scorer never sees where the password ends up.
package password

import "strings"

// symbolSet is the fixed punctuation set that satisfies the symbol criterion.
const symbolSet = "!\"#$%&'()*+,-./:;<=>?@[\\]^_" + "`{|}~"

// Feedback messages, one per unmet criterion, in check order. Stable contract
// for UI display.
const (
	feedbackLength    = "use at least 8 characters"
	feedbackLowercase = "add a lowercase letter"
	feedbackUppercase = "add an uppercase letter"
	feedbackDigit     = "add a digit"
	feedbackSymbol    = "add a symbol"
)

// Assessment is the result of one strength check. Computed fresh on every
// call and never stored.
type Assessment struct {
	Valid    bool     `json:"is_valid"`
	Score    int      `json:"score"`
	Feedback []string `json:"feedback"`
}

// Assess awards one point each for: length >= 8, a lowercase letter, an
// uppercase letter, a digit, and a symbol from the fixed punctuation set.
// Valid means score >= 4. Feedback lists one message per unmet criterion in
// the fixed check order (length, lowercase, uppercase, digit, symbol).
func Assess(password string) Assessment {
	a := Assessment{Feedback: []string{}}

	checks := []struct {
		met     bool
		message string
	}{
		{len(password) >= 8, feedbackLength},
		{containsRange(password, 'a', 'z'), feedbackLowercase},
		{containsRange(password, 'A', 'Z'), feedbackUppercase},
		{containsRange(password, '0', '9'), feedbackDigit},
		{strings.ContainsAny(password, symbolSet), feedbackSymbol},
	}

	for _, c := range checks {
		if c.met {
			a.Score++
		} else {
			a.Feedback = append(a.Feedback, c.message)
		}
	}

	a.Valid = a.Score >= 4
	return a
}

func containsRange(s string, lo, hi byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= lo && s[i] <= hi {
			return true
		}
	}
	return false
}
