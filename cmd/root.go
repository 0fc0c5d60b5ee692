package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamusis/hrmatch/internal/config"
)

var flagLogLevel string

var rootCmd = &cobra.Command{
	Use:          "hrmatch",
	Short:        "hrmatch: match staffing requests against an employee roster",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `hrmatch ranks employees from a roster against a free-text staffing request.

Queries are served from a cached semantic index when an embeddings backend is
configured in ~/.hrmatch/.env, and from a lexical scorer otherwise.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from hrmatch.yaml, else warn)")
}

// setupLogging installs a text slog handler on stderr. The --log-level flag
// wins over log_level in hrmatch.yaml.
func setupLogging(cmd *cobra.Command) error {
	level := flagLogLevel
	if !cmd.Flags().Changed("log-level") {
		if cfg, err := config.Load(); err == nil {
			level = cfg.LogLevel
		}
	}
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q", s)
	}
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
