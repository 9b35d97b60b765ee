package fuzzy

import (
	"strings"
	"unicode/utf8"
)

// Levenshtein returns the case-insensitive edit distance between a and b,
// counting one per rune inserted, deleted or substituted.
func Levenshtein(a, b string) int {
	return levenshtein(strings.ToLower(a), strings.ToLower(b))
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// Two rows of the DP table are enough.
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
