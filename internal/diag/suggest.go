package diag

import (
	"github.com/agnivade/levenshtein"
)

// Suggest returns the candidate closest to key by edit distance, when the
// distance is small enough to be a plausible typo. Ties go to the earlier
// candidate.
func Suggest(key string, candidates []string) (string, bool) {
	best, bestDist := "", -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(key, c)
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > threshold(key, best) {
		return "", false
	}
	return best, true
}

// threshold allows one edit per three characters of the longer word, and at
// least one.
func threshold(a, b string) int {
	n := max(len(a), len(b)) / 3
	return max(n, 1)
}
