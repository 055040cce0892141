package match

import (
	"sort"

	"github.com/arkamesh/arka/internal/record"
)

// Rank totally orders match results by descending score.
//
// The sort is stable: entries with equal scores keep their original
// relative order, so repeated runs over the same input produce the
// same ranking.
//
// The input slice is not modified; Rank returns a new slice.
func Rank(results []record.MatchResult) []record.MatchResult {
	ranked := make([]record.MatchResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
