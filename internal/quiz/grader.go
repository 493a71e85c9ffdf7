package quiz

import (
	"strings"
	"unicode"
)

// Matches grades a submitted answer against the expected one.
//
// Both sides are normalized: all whitespace removed, Latin letters
// lowercased (Arabic has no case to fold). An expected answer containing a
// comma encodes a multi-valued result; both sides are then split on commas
// and compared as unordered sets, so "-2,2" matches "2,-2". No numeric
// equivalence is applied: "4.0" does not match "4".
func Matches(submitted, expected string) bool {
	if strings.Contains(expected, ",") {
		return setsEqual(normalizeSet(submitted), normalizeSet(expected))
	}
	return normalize(submitted) == normalize(expected)
}

func normalize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func normalizeSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		if v := normalize(part); v != "" {
			set[v] = true
		}
	}
	return set
}

func setsEqual(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for v := range a {
		if !b[v] {
			return false
		}
	}
	return true
}
