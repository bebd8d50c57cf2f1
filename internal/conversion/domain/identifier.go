package domain

import "regexp"

// Click identifiers arriving on the URL are only trusted inside a
// narrow window: the allow-listed charset and a length of 92 to 500.
// Anything else is rejected and logged rather than truncated.
const (
	MinClickIDLength = 92
	MaxClickIDLength = 500
)

var clickIDPattern = regexp.MustCompile(`^[A-Za-z0-9\-_.]+$`)

// ValidToken reports whether s uses only the allow-listed charset.
// This is the permissive gate the cross-domain relay applies.
func ValidToken(s string) bool {
	return s != "" && clickIDPattern.MatchString(s)
}

// ValidClickID applies the strict URL-parameter gate: charset plus the
// length window.
func ValidClickID(s string) bool {
	if len(s) < MinClickIDLength || len(s) > MaxClickIDLength {
		return false
	}
	return ValidToken(s)
}
