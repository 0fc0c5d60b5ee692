package search

import "github.com/kamusis/hrmatch/internal/roster"

// Result represents one ranked profile.
//
// Score scales differ between retrieval paths; lexical scores are roughly
// unbounded while semantic scores are cosine similarities. Do not compare
// scores produced by different paths.
type Result struct {
	Profile roster.Profile
	Score   float64
	Why     string
}

// Intent holds the structured constraints extracted from a free-text query.
type Intent struct {
	MinExperience   *int
	Availability    roster.Availability
	Skills          []string
	Domain          string
	ProjectKeywords []string
	Location        string
}

// TermVector maps a normalized term to its frequency.
type TermVector map[string]int
