package answer

import (
	"fmt"
	"strings"

	"github.com/kamusis/hrmatch/internal/roster"
	"github.com/kamusis/hrmatch/internal/search"
)

// SystemPrompt instructs the model how to phrase a recommendation.
const SystemPrompt = `You are an HR assistant that recommends suitable employees based on a user query.
Be precise, concise, and justify each recommendation with skills, years, and relevant projects.
If data is missing, state assumptions. Keep the tone professional.`

const (
	noMatchTemplate = "I couldn't find strong matches. Try adding skills, years of experience, domain or location."
	noMatchSummary  = "I couldn't find a strong match. Try adding skills, years of experience, or domain keywords."
)

// BuildPrompt renders the user prompt listing the shortlist in rank order.
func BuildPrompt(query string, profiles []roster.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User query: %s\n\n", query)
	b.WriteString("Candidate shortlist:\n\n")
	for i, p := range profiles {
		fmt.Fprintf(&b, "%d. %s - %s (%d yrs) | Skills: %s | Projects: %s | Domains: %s | Location: %s | Availability: %s\n",
			i+1, p.Name, p.Title, p.ExperienceYears,
			strings.Join(p.Skills, ", "),
			strings.Join(p.Projects, ", "),
			strings.Join(p.Domains, ", "),
			p.Location, p.Availability)
	}
	b.WriteString("\nWrite a brief, structured recommendation focusing on best-fit reasoning.")
	return b.String()
}

// Template is the deterministic answer used when no model output is available.
func Template(query string, profiles []roster.Profile) string {
	if len(profiles) == 0 {
		return noMatchTemplate
	}
	lines := []string{fmt.Sprintf("Based on your query, here are %d recommended profiles:", len(profiles))}
	for _, p := range profiles {
		lines = append(lines, bullet(p, false))
	}
	lines = append(lines, "Would you like me to verify availability or share contact details?")
	return strings.Join(lines, "\n")
}

// Summary is the answer for lexical mode. Names are rendered in bold.
func Summary(query string, results []search.Result) string {
	if len(results) == 0 {
		return noMatchSummary
	}
	lines := []string{fmt.Sprintf("Based on your query, here are %d recommended profiles:", len(results))}
	for _, r := range results {
		lines = append(lines, bullet(r.Profile, true))
	}
	lines = append(lines, "Would you like me to check their current availability or share contact details?")
	return strings.Join(lines, "\n")
}

func bullet(p roster.Profile, bold bool) string {
	name := p.Name
	if bold {
		name = "**" + name + "**"
	}
	return fmt.Sprintf("- %s (%s, %d yrs): Skills: %s; Projects: %s; Availability: %s",
		name, p.Title, p.ExperienceYears,
		strings.Join(p.Skills, ", "),
		strings.Join(p.Projects, ", "),
		p.Availability)
}
