package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var flagIndexForce bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build or refresh the cached semantic index",
	Long: `Build the semantic index for the configured roster and persist it to cache_dir.

The cache is reused when the roster and embeddings model are unchanged.
Use --force to rebuild anyway.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&flagIndexForce, "force", false, "Rebuild even if the cache matches the roster")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	s, err := openSession(ctx, sessionOptions{semantic: true, force: flagIndexForce})
	if err != nil {
		return err
	}
	defer closeSession(s)

	printSection("hrmatch index")
	printInfo("", fmt.Sprintf("roster: %s (%d profiles)", s.cfg.RosterPath, len(s.profiles)))
	printInfo("", fmt.Sprintf("cache: %s (%s)", s.cfg.CacheDir, s.cfg.CacheBackend))

	st := s.manager.Status()
	if !s.manager.Available() {
		printErr("", fmt.Sprintf("semantic index unavailable: %s", st.Reason))
		return errors.New("index build failed")
	}
	if s.manager.FromCache() {
		printSkip("", "cache is up to date")
		return nil
	}
	printOK("", fmt.Sprintf("semantic index written at %s", s.manager.LoadedAt().Format(time.RFC3339)))
	return nil
}
