package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrRosterEmpty is returned when a roster file contains no employees.
var ErrRosterEmpty = errors.New("roster is empty")

// file is the on-disk envelope: {"employees": [...]}.
type file struct {
	Employees []Profile `json:"employees" yaml:"employees"`
}

// Load reads a roster from a JSON or YAML file. The format is chosen by extension.
func Load(path string) ([]Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read roster %s: %w", path, err)
	}

	var f file
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &f); err != nil {
			return nil, fmt.Errorf("invalid YAML roster %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &f); err != nil {
			return nil, fmt.Errorf("invalid JSON roster %s: %w", path, err)
		}
	}
	if len(f.Employees) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrRosterEmpty)
	}

	seen := make(map[int]struct{}, len(f.Employees))
	for _, p := range f.Employees {
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("duplicate employee id %d in %s", p.ID, path)
		}
		seen[p.ID] = struct{}{}
		if _, err := ParseAvailability(string(p.Availability)); err != nil {
			return nil, fmt.Errorf("employee %d: %w", p.ID, err)
		}
	}
	return f.Employees, nil
}
