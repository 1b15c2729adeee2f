// Package fuzzy ranks candidate names by edit distance for "did you mean"
// suggestions in diagnostics.
package fuzzy

import (
	"sort"
	"strings"
)

// Distance calculates the Levenshtein distance between two strings.
// This is the minimum number of single-character edits (insertions, deletions, or substitutions)
// required to change one string into the other.
func Distance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Two rows are enough: the previous and the current.
	prevRow := make([]int, len(a)+1)
	currRow := make([]int, len(a)+1)

	for i := range prevRow {
		prevRow[i] = i
	}

	for i := 1; i <= len(b); i++ {
		currRow[0] = i

		for j := 1; j <= len(a); j++ {
			cost := 0
			if a[j-1] != b[i-1] {
				cost = 1
			}

			currRow[j] = min(
				currRow[j-1]+1,    // insertion
				prevRow[j]+1,      // deletion
				prevRow[j-1]+cost, // substitution
			)
		}

		prevRow, currRow = currRow, prevRow
	}

	return prevRow[len(a)]
}

// Closest returns up to limit candidates within threshold edits of name,
// closest first. Comparison is case-insensitive; ties keep candidate order.
func Closest(name string, candidates []string, threshold, limit int) []string {
	type suggestion struct {
		name     string
		distance int
	}

	lower := strings.ToLower(name)
	var suggestions []suggestion
	for _, c := range candidates {
		if strings.EqualFold(c, name) {
			continue
		}
		if d := Distance(lower, strings.ToLower(c)); d <= threshold {
			suggestions = append(suggestions, suggestion{c, d})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].distance < suggestions[j].distance
	})

	var out []string
	for i := 0; i < len(suggestions) && i < limit; i++ {
		out = append(out, suggestions[i].name)
	}
	return out
}
