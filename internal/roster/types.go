package roster

import "fmt"

// Availability is the staffing status of an employee.
type Availability string

const (
	Available Availability = "available"
	Busy      Availability = "busy"
)

// ParseAvailability validates s as an Availability value.
func ParseAvailability(s string) (Availability, error) {
	switch Availability(s) {
	case Available, Busy:
		return Availability(s), nil
	default:
		return "", fmt.Errorf("invalid availability %q (want available or busy)", s)
	}
}

// Profile is one employee record. Profiles are treated as immutable once loaded.
type Profile struct {
	ID              int          `json:"id" yaml:"id"`
	Name            string       `json:"name" yaml:"name"`
	Title           string       `json:"title" yaml:"title"`
	Skills          []string     `json:"skills" yaml:"skills"`
	ExperienceYears int          `json:"experience_years" yaml:"experience_years"`
	Projects        []string     `json:"projects" yaml:"projects"`
	Availability    Availability `json:"availability" yaml:"availability"`
	Domains         []string     `json:"domains" yaml:"domains"`
	Location        string       `json:"location" yaml:"location"`
}
