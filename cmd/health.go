package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Report the retrieval mode and semantic index status",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	s, err := openSession(ctx, sessionOptions{semantic: true})
	if err != nil {
		return err
	}
	defer closeSession(s)

	h := s.engine.Health()
	printSection("hrmatch health")
	printOK("", fmt.Sprintf("roster loaded: %d profiles", len(s.profiles)))
	printInfo("mode", string(h.Mode))
	if h.SemanticAvailable {
		printOK("semantic", "available")
	} else {
		printWarn("semantic", fmt.Sprintf("unavailable: %s", h.Reason))
	}
	return nil
}
