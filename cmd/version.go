package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/kamusis/hrmatch/cmd.version=...".
var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show hrmatch version and build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(_ *cobra.Command, _ []string) error {
	info := buildInfo()
	fmt.Printf("hrmatch %s\n", info.version)
	fmt.Printf("  commit:     %s\n", info.commit)
	fmt.Printf("  built:      %s\n", info.date)
	fmt.Printf("  go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return nil
}

type versionInfo struct {
	version, commit, date string
}

// buildInfo fills fields not set by ldflags from the module's VCS stamp, as
// recorded by `go install` or `go build` inside a checkout.
func buildInfo() versionInfo {
	v := versionInfo{version: version, commit: commit, date: buildDate}
	if bi, ok := debug.ReadBuildInfo(); ok {
		if v.version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			v.version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if v.commit == "" {
					v.commit = s.Value
				}
			case "vcs.time":
				if v.date == "" {
					v.date = s.Value
				}
			}
		}
	}
	if v.commit == "" {
		v.commit = "n/a"
	}
	if v.date == "" {
		v.date = "n/a"
	}
	return v
}
