package roster

import "strings"

// Criteria is a structured, all-of filter over the roster. Zero values mean
// "unconstrained".
type Criteria struct {
	Skills        []string
	MinExperience *int
	Project       string
	Availability  Availability
	Domain        string
	Location      string
}

// Filter returns the profiles matching every set criterion, in roster order.
func Filter(profiles []Profile, c Criteria) []Profile {
	out := []Profile{}
	for _, p := range profiles {
		if matches(p, c) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p Profile, c Criteria) bool {
	if len(c.Skills) > 0 {
		have := make(map[string]struct{}, len(p.Skills))
		for _, s := range p.Skills {
			have[strings.ToLower(s)] = struct{}{}
		}
		for _, s := range c.Skills {
			if _, ok := have[strings.ToLower(s)]; !ok {
				return false
			}
		}
	}
	if c.MinExperience != nil && p.ExperienceYears < *c.MinExperience {
		return false
	}
	if c.Project != "" {
		joined := strings.ToLower(strings.Join(p.Projects, " "))
		if !strings.Contains(joined, strings.ToLower(c.Project)) {
			return false
		}
	}
	if c.Availability != "" && p.Availability != c.Availability {
		return false
	}
	if c.Domain != "" && !containsFold(p.Domains, c.Domain) {
		return false
	}
	if c.Location != "" && !strings.EqualFold(c.Location, p.Location) {
		return false
	}
	return true
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
