package search

import (
	"math"
	"regexp"
	"strings"
)

var tokenRe = regexp.MustCompile(`[a-z][a-z+\-.]*`)

type alias struct {
	key   string
	words []string
}

// aliases maps domain shorthand to canonical words. Order is significant for
// the emitted token sequence only.
var aliases = []alias{
	{"ml", []string{"machine", "learning", "ml"}},
	{"machinelearning", []string{"machine", "learning", "ml"}},
	{"ai", []string{"ai", "artificial", "intelligence"}},
	{"reactnative", []string{"react", "native", "react-native"}},
	{"cv", []string{"computer", "vision", "cv"}},
	{"nlp", []string{"nlp", "natural", "language", "processing"}},
	{"k8s", []string{"kubernetes", "k8s"}},
	{"devops", []string{"devops", "sre", "platform"}},
	{"aws", []string{"aws", "amazon", "web", "services"}},
	{"gcp", []string{"gcp", "google", "cloud"}},
	{"azure", []string{"azure"}},
	{"db", []string{"database", "sql", "postgres", "mysql"}},
}

// Normalize lower-cases text and returns its tokens. A token starts with a
// letter and may continue with letters, '+', '-' or '.'.
func Normalize(text string) []string {
	return tokenRe.FindAllString(strings.ToLower(text), -1)
}

// ExpandAliases appends alias expansions to tokens. An alias fires when its key
// is a substring of the concatenated tokens (so "html" fires "ml") or when any
// of its canonical words is already a token. Expansion is additive: the input
// tokens are always kept.
func ExpandAliases(tokens []string) []string {
	expanded := make([]string, len(tokens), len(tokens)*2)
	copy(expanded, tokens)

	joined := strings.Join(tokens, "")
	present := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		present[t] = struct{}{}
	}

	for _, a := range aliases {
		if !strings.Contains(joined, a.key) && !anyPresent(present, a.words) {
			continue
		}
		expanded = append(expanded, a.words...)
		expanded = append(expanded, a.key)
	}
	return expanded
}

func anyPresent(set map[string]struct{}, words []string) bool {
	for _, w := range words {
		if _, ok := set[w]; ok {
			return true
		}
	}
	return false
}

// BagOfWords returns the term frequencies of the alias-expanded tokens of text.
func BagOfWords(text string) TermVector {
	tv := TermVector{}
	for _, t := range ExpandAliases(Normalize(text)) {
		tv[t]++
	}
	return tv
}

// Cosine returns the cosine similarity of two term vectors, or 0 when either
// is empty.
func Cosine(a, b TermVector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot, na, nb float64
	for t, x := range a {
		na += float64(x * x)
		if y, ok := b[t]; ok {
			dot += float64(x * y)
		}
	}
	for _, y := range b {
		nb += float64(y * y)
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
