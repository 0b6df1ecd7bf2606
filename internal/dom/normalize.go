package dom

import "strings"

// Normalize collapses whitespace runs to a single space, trims, and lowercases.
// Every text comparison in the rubric goes through this form.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Contains is the lenient text test: normalized substring containment.
// An empty needle always matches.
func Contains(haystack, needle string) bool {
	return strings.Contains(Normalize(haystack), Normalize(needle))
}

// ContainsAny reports whether haystack contains at least one of needles.
func ContainsAny(haystack string, needles ...string) bool {
	h := Normalize(haystack)
	for _, n := range needles {
		if strings.Contains(h, Normalize(n)) {
			return true
		}
	}
	return false
}
