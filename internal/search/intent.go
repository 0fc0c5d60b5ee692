package search

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kamusis/hrmatch/internal/roster"
)

var (
	experienceRe = regexp.MustCompile(`(\d+)\s*\+?\s*year`)
	projectRe    = regexp.MustCompile(`(?:project|projects|worked on) ([a-zA-Z\s\-]+)`)
)

// knownSkills holds punctuation-stripped skill tokens recognized in queries.
var knownSkills = map[string]struct{}{
	"python": {}, "django": {}, "aws": {}, "docker": {}, "react": {}, "reactnative": {},
	"react-native": {}, "typescript": {}, "node.js": {}, "node": {}, "gcp": {}, "azure": {},
	"pytorch": {}, "tensorflow": {}, "computer": {}, "vision": {}, "ml": {}, "machine": {},
	"learning": {}, "nlp": {}, "transformers": {}, "spark": {}, "airflow": {}, "fastapi": {},
	"sql": {}, "powerbi": {}, "kubernetes": {}, "terraform": {}, "mongodb": {}, "redis": {},
	"postgre": {}, "postgresql": {}, "spacy": {}, "vector": {}, "db": {},
}

var domainKeywords = []string{
	"healthcare", "health", "fintech", "ecommerce", "saas", "retail", "legal", "legaltech",
	"hr", "hrtech", "iot", "logistics", "adtech", "telecom", "enterprise",
}

var domainSynonyms = map[string]string{
	"health": "healthcare",
	"legal":  "legaltech",
	"hr":     "hrtech",
}

var locationKeywords = []string{
	"bengaluru", "bangalore", "mumbai", "pune", "delhi", "noida", "hyderabad", "chennai",
	"ahmedabad", "gurugram", "remote",
}

var punctStripper = strings.NewReplacer(".", "", "-", "")

// ParseQuery extracts structured constraints from a free-text query. Domain and
// location keywords match as substrings; the first hit in table order wins.
func ParseQuery(query string) Intent {
	q := strings.ToLower(query)
	var in Intent

	if m := experienceRe.FindStringSubmatch(q); m != nil {
		n, err := strconv.Atoi(m[1])
		if errors.Is(err, strconv.ErrRange) {
			n, err = math.MaxInt, nil
		}
		if err == nil {
			in.MinExperience = &n
		}
	}

	if strings.Contains(q, "available") || strings.Contains(q, "immediately") {
		in.Availability = roster.Available
	}

	for _, t := range Normalize(q) {
		if _, ok := knownSkills[stripPunct(t)]; ok {
			in.Skills = append(in.Skills, t)
		}
	}

	for _, d := range domainKeywords {
		if strings.Contains(q, d) {
			if canon, ok := domainSynonyms[d]; ok {
				d = canon
			}
			in.Domain = d
			break
		}
	}

	for _, m := range projectRe.FindAllStringSubmatch(q, -1) {
		in.ProjectKeywords = append(in.ProjectKeywords, strings.TrimSpace(m[1]))
	}

	for _, loc := range locationKeywords {
		if strings.Contains(q, loc) {
			switch loc {
			case "bengaluru", "bangalore":
				in.Location = "Bengaluru"
			case "remote":
				in.Location = "remote"
			default:
				// cases.Caser is stateful and must not be shared across goroutines.
				in.Location = cases.Title(language.English).String(loc)
			}
			break
		}
	}

	return in
}

// stripPunct removes dots and hyphens, so "node.js" and "nodejs" compare equal.
func stripPunct(s string) string {
	return punctStripper.Replace(s)
}
