package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/kamusis/hrmatch/internal/roster"
	"github.com/kamusis/hrmatch/internal/search"
)

// ── Unified output helpers ────────────────────────────────────────────────────
// All commands use these functions to ensure consistent icon usage and
// indentation throughout hrmatch's CLI output.
//
// Icon semantics:
//   ✓  success / healthy
//   ✗  error / failure          (written to stderr)
//   ⚠  warning
//   ○  skipped / not applicable
//   ~  neutral info / state change

// printSection prints a top-level section header, e.g. "=== Health ===".
func printSection(title string) {
	fmt.Printf("\n=== %s ===\n", title)
}

// printOK prints a success line.
//   name = "" → "  ✓  msg"
//   name set  → "  ✓  [name] msg"
func printOK(name, msg string) {
	if name == "" {
		fmt.Printf("  ✓  %s\n", msg)
	} else {
		fmt.Printf("  ✓  [%s] %s\n", name, msg)
	}
}

// printErr prints an error line to stderr.
func printErr(name, msg string) {
	if name == "" {
		fmt.Fprintf(os.Stderr, "  ✗  %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "  ✗  [%s] %s\n", name, msg)
	}
}

// printWarn prints a warning line.
func printWarn(name, msg string) {
	if name == "" {
		fmt.Printf("  ⚠  %s\n", msg)
	} else {
		fmt.Printf("  ⚠  [%s] %s\n", name, msg)
	}
}

// printSkip prints a skipped / not-applicable line.
func printSkip(name, msg string) {
	if name == "" {
		fmt.Printf("  ○  %s\n", msg)
	} else {
		fmt.Printf("  ○  [%s] %s\n", name, msg)
	}
}

// printInfo prints a neutral informational / state-change line.
func printInfo(name, msg string) {
	if name == "" {
		fmt.Printf("  ~  %s\n", msg)
	} else {
		fmt.Printf("  ~  [%s] %s\n", name, msg)
	}
}

// printResults prints a ranked shortlist as an aligned table.
func printResults(results []search.Result) {
	fmt.Printf("Results (%d found):\n", len(results))
	if len(results) == 0 {
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, r := range results {
		p := r.Profile
		fmt.Fprintf(w, "  %d.\t[%.3f]\t%s\t%s\t%d yrs\t%s\n",
			i+1, r.Score, p.Name, p.Title, p.ExperienceYears, p.Availability)
		fmt.Fprintf(w, "  \t\t- %s\n", strings.Join(p.Skills, ", "))
	}
	_ = w.Flush()
}

// printProfiles prints profiles in roster order.
func printProfiles(profiles []roster.Profile) {
	fmt.Printf("Profiles (%d found):\n", len(profiles))
	if len(profiles) == 0 {
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, p := range profiles {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%d yrs\t%s\t%s\n",
			p.ID, p.Name, p.Title, p.ExperienceYears, p.Availability, p.Location)
		fmt.Fprintf(w, "  \t- %s\n", strings.Join(p.Skills, ", "))
	}
	_ = w.Flush()
}
