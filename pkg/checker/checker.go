// Package checker decides pass/fail for a single model output against an
// expected-output spec.
package checker

import "strings"

// Match is the outcome of checking one output against its expected spec.
type Match struct {
	Pass bool
	// Term is the first alternative that matched, in declaration order.
	// Empty when no assertion was configured or nothing matched.
	Term string
}

// Check reports whether actual satisfies the expected-output spec.
//
// An empty spec means no assertion is configured and always passes. Otherwise
// the spec is split on "|" into an ordered list of alternatives; each is
// trimmed of surrounding whitespace and compared as a case-insensitive
// substring of actual. The first matching alternative wins. Alternatives that
// are empty after trimming are skipped rather than matching everything.
func Check(actual, expected string) Match {
	if expected == "" {
		return Match{Pass: true}
	}

	lowered := strings.ToLower(actual)
	for _, alt := range strings.Split(expected, "|") {
		alt = strings.TrimSpace(alt)
		if alt == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(alt)) {
			return Match{Pass: true, Term: alt}
		}
	}

	return Match{}
}
