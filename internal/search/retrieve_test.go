package search

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kamusis/hrmatch/internal/roster"
)

func loadFixture(t *testing.T) []roster.Profile {
	t.Helper()
	profiles, err := roster.Load(filepath.Join("..", "..", "testdata", "employees.json"))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return profiles
}

var sampleQueries = []string{
	"Find Python developers with 3+ years experience",
	"ML engineer for healthcare project diagnosis in Pune",
	"Who is available immediately for a remote kubernetes role?",
	"worked on banking portal with react",
	"",
	"zzz qqq",
}

func TestScore_FiniteAndDeterministic(t *testing.T) {
	profiles := loadFixture(t)
	for _, q := range sampleQueries {
		in := ParseQuery(q)
		for _, p := range profiles {
			s1 := Score(p, q, in)
			s2 := Score(p, q, ParseQuery(q))
			if math.IsNaN(s1) || math.IsInf(s1, 0) {
				t.Fatalf("score not finite for %q/%d: %v", q, p.ID, s1)
			}
			if s1 != s2 {
				t.Fatalf("score not reproducible for %q/%d: %v vs %v", q, p.ID, s1, s2)
			}
		}
	}
}

func TestScore_Signals(t *testing.T) {
	base := roster.Profile{
		ID:              1,
		Name:            "Test",
		Title:           "Engineer",
		Skills:          []string{"Python", "Node.js"},
		ExperienceYears: 4,
		Projects:        []string{"Fraud Analytics Platform"},
		Availability:    roster.Available,
		Domains:         []string{"FinTech"},
		Location:        "Pune",
	}
	cosineOnly := func(q string) float64 {
		return weightCosine * Cosine(BagOfWords(q), BagOfWords(roster.Text(base)))
	}
	five, two := 5, 2

	cases := []struct {
		name string
		in   Intent
		want float64
	}{
		{"experience met", Intent{MinExperience: &two}, bonusExperience},
		{"experience missed", Intent{MinExperience: &five}, penaltyExperience},
		{"availability", Intent{Availability: roster.Available}, bonusAvailability},
		{"half the skills", Intent{Skills: []string{"python", "rust"}}, weightSkills * 0.5},
		{"punctuation-insensitive skills", Intent{Skills: []string{"nodejs"}}, weightSkills},
		{"domain", Intent{Domain: "fintech"}, bonusDomain},
		{"two project keywords", Intent{ProjectKeywords: []string{"fraud", "analytics platform"}}, 2 * bonusProject},
		{"location", Intent{Location: "Pune"}, bonusLocation},
		{"location mismatch", Intent{Location: "remote"}, 0},
	}
	for _, c := range cases {
		got := Score(base, "q", c.in) - cosineOnly("q")
		if math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("%s: bonus %v want %v", c.name, got, c.want)
		}
	}

	busy := base
	busy.Availability = roster.Busy
	got := Score(busy, "q", Intent{Availability: roster.Available}) - weightCosine*Cosine(BagOfWords("q"), BagOfWords(roster.Text(busy)))
	if math.Abs(got-penaltyAvailability) > 1e-9 {
		t.Fatalf("availability penalty %v want %v", got, penaltyAvailability)
	}

	remote := base
	remote.Location = "Remote"
	got = Score(remote, "q", Intent{Location: "remote"}) - weightCosine*Cosine(BagOfWords("q"), BagOfWords(roster.Text(remote)))
	if math.Abs(got-bonusLocation) > 1e-9 {
		t.Fatalf("remote bonus %v want %v", got, bonusLocation)
	}
}

func TestRetrieve_PythonRegression(t *testing.T) {
	profiles := loadFixture(t)
	results := Retrieve("Find Python developers with 3+ years experience", profiles, 5)
	if len(results) == 0 {
		t.Fatalf("expected at least one result")
	}
	top := results[0].Profile
	hasPython := false
	for _, s := range top.Skills {
		if strings.ToLower(s) == "python" {
			hasPython = true
		}
	}
	if !hasPython || top.ExperienceYears < 3 {
		t.Fatalf("unexpected top result: %+v", top)
	}
}

func TestRetrieve_BoundedAndSorted(t *testing.T) {
	profiles := loadFixture(t)
	for _, q := range sampleQueries {
		for _, k := range []int{1, 2, 5, 20} {
			results := Retrieve(q, profiles, k)
			if len(results) > k {
				t.Fatalf("%q k=%d: got %d results", q, k, len(results))
			}
			for i, r := range results {
				if r.Score <= MinLexicalScore {
					t.Fatalf("%q: result below floor: %v", q, r.Score)
				}
				if i > 0 && r.Score > results[i-1].Score {
					t.Fatalf("%q: results not sorted at %d", q, i)
				}
			}
		}
	}
}

func TestRetrieve_NoOverlapIsEmpty(t *testing.T) {
	profiles := loadFixture(t)
	if got := Retrieve("zzz qqq", profiles, 5); len(got) != 0 {
		t.Fatalf("expected no results, got %d", len(got))
	}
	if got := Retrieve("python", profiles, 0); len(got) != 0 {
		t.Fatalf("expected no results for topK=0, got %d", len(got))
	}
}

func TestRetrieve_AvailabilityOrdering(t *testing.T) {
	mk := func(id int, a roster.Availability) roster.Profile {
		return roster.Profile{
			ID: id, Name: "Sam", Title: "Backend Engineer", Skills: []string{"Python"},
			ExperienceYears: 4, Projects: []string{"Billing"}, Availability: a,
			Domains: []string{"saas"}, Location: "Pune",
		}
	}
	profiles := []roster.Profile{mk(1, roster.Busy), mk(2, roster.Available)}
	results := Retrieve("python engineer available immediately", profiles, 5)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Profile.ID != 2 || !(results[0].Score > results[1].Score) {
		t.Fatalf("available profile must rank strictly higher: %+v", results)
	}
}

func TestRetrieve_TiesKeepRosterOrder(t *testing.T) {
	p := roster.Profile{Name: "Same", Title: "Python Dev", Skills: []string{"Python"}, Availability: roster.Busy}
	var profiles []roster.Profile
	for i := 1; i <= 4; i++ {
		q := p
		q.ID = i
		profiles = append(profiles, q)
	}
	results := Retrieve("python", profiles, 3)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Profile.ID != i+1 {
			t.Fatalf("tie order broken at %d: id %d", i, r.Profile.ID)
		}
	}
}
