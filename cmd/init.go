package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamusis/hrmatch/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create ~/.hrmatch with a default config and .env template",
	Long: `Initialize ~/.hrmatch/.

Writes hrmatch.yaml with default settings and an empty .env template for the
embeddings and answer-generation backends. Existing files are left untouched.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var flagInitRoster string

func init() {
	initCmd.Flags().StringVar(&flagInitRoster, "roster", "", "Path to the roster file (JSON or YAML)")
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	// ── 1. Resolve ~/.hrmatch directory ───────────────────────────────────────
	dir, err := config.HomeDir()
	if err != nil {
		return err
	}
	cfgPath, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", dir, err)
	}
	printOK("", fmt.Sprintf("hrmatch directory ready: %s", dir))

	// ── 2. Write hrmatch.yaml if missing ──────────────────────────────────────
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		cfg, err := config.DefaultConfig()
		if err != nil {
			return err
		}
		if flagInitRoster != "" {
			cfg.RosterPath = flagInitRoster
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("Config written: %s", cfgPath))
	} else {
		printSkip("", fmt.Sprintf("Config already exists: %s", cfgPath))
	}

	// ── 3. Write .env template if missing ─────────────────────────────────────
	envPath, err := config.DotEnvPath()
	if err != nil {
		return err
	}
	if err := config.EnsureDotEnvTemplate(); err != nil {
		return err
	}
	printOK("", fmt.Sprintf("Environment file ready: %s", envPath))

	// ── 4. Validate the final config ──────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfg.RosterPath); err != nil {
		printWarn("", fmt.Sprintf("roster not found at %s; set roster_path in %s", cfg.RosterPath, cfgPath))
	}

	fmt.Println("\n✓  hrmatch init complete. Run 'hrmatch health' to verify your environment.")
	return nil
}
