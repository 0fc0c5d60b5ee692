package search

import "github.com/kamusis/hrmatch/internal/roster"

// MinLexicalScore is the floor a lexical match must exceed to be returned.
const MinLexicalScore = 0.05

// Retrieve ranks profiles against query and returns at most topK results with
// a score above MinLexicalScore, best first. The floor is applied to the best
// 2*topK candidates only.
func Retrieve(query string, profiles []roster.Profile, topK int) []Result {
	if topK <= 0 {
		return []Result{}
	}
	in := ParseQuery(query)

	scored := make([]Result, len(profiles))
	for i, p := range profiles {
		scored[i] = Result{Profile: p, Score: Score(p, query, in), Why: "lexical"}
	}
	SortResults(scored)

	if len(scored) > 2*topK {
		scored = scored[:2*topK]
	}
	out := make([]Result, 0, topK)
	for _, r := range scored {
		if r.Score <= MinLexicalScore {
			continue
		}
		out = append(out, r)
		if len(out) == topK {
			break
		}
	}
	return out
}
