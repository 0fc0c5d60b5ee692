package search

import (
	"sort"

	"github.com/kamusis/hrmatch/internal/roster"
)

// SortResults sorts results by score (descending). Ties keep their input order.
func SortResults(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}

// Profiles returns the profiles of results in order.
func Profiles(results []Result) []roster.Profile {
	out := make([]roster.Profile, len(results))
	for i, r := range results {
		out[i] = r.Profile
	}
	return out
}
