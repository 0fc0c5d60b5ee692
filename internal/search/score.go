package search

import (
	"strings"

	"github.com/kamusis/hrmatch/internal/roster"
)

// Signal weights for Score.
const (
	weightCosine        = 0.6
	bonusExperience     = 0.15
	penaltyExperience   = -0.20
	bonusAvailability   = 0.10
	penaltyAvailability = -0.10
	weightSkills        = 0.25
	bonusDomain         = 0.10
	bonusProject        = 0.05
	bonusLocation       = 0.05
)

// Score returns the lexical relevance of p to query given its parsed intent.
// It is a pure function of its inputs.
func Score(p roster.Profile, query string, in Intent) float64 {
	s := weightCosine * Cosine(BagOfWords(query), BagOfWords(roster.Text(p)))

	if in.MinExperience != nil {
		if p.ExperienceYears >= *in.MinExperience {
			s += bonusExperience
		} else {
			s += penaltyExperience
		}
	}

	if in.Availability == roster.Available {
		if p.Availability == roster.Available {
			s += bonusAvailability
		} else {
			s += penaltyAvailability
		}
	}

	if want := skillSet(in.Skills, false); len(want) > 0 {
		have := skillSet(p.Skills, true)
		matched := 0
		for k := range want {
			if _, ok := have[k]; ok {
				matched++
			}
		}
		s += weightSkills * float64(matched) / float64(len(want))
	}

	if in.Domain != "" {
		for _, d := range p.Domains {
			if strings.ToLower(d) == in.Domain {
				s += bonusDomain
				break
			}
		}
	}

	if len(in.ProjectKeywords) > 0 {
		projects := strings.ToLower(strings.Join(p.Projects, " "))
		for _, kw := range in.ProjectKeywords {
			if strings.Contains(projects, strings.ToLower(kw)) {
				s += bonusProject
			}
		}
	}

	if in.Location != "" {
		want := strings.ToLower(in.Location)
		have := strings.ToLower(p.Location)
		if want == "remote" && have == "remote" {
			s += bonusLocation
		} else if want == have {
			s += bonusLocation
		}
	}

	return s
}

func skillSet(skills []string, lower bool) map[string]struct{} {
	out := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		if lower {
			s = strings.ToLower(s)
		}
		out[stripPunct(s)] = struct{}{}
	}
	return out
}
