package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Retrieval modes.
const (
	ModeSemantic = "semantic"
	ModeLexical  = "lexical"
)

// Cache backends.
const (
	CacheDir    = "dir"
	CacheBadger = "badger"
)

// Config is the in-memory representation of ~/.hrmatch/hrmatch.yaml.
type Config struct {
	RosterPath   string `yaml:"roster_path"`
	Mode         string `yaml:"mode,omitempty"`
	CacheDir     string `yaml:"cache_dir,omitempty"`
	CacheBackend string `yaml:"cache_backend,omitempty"`
	TopK         int    `yaml:"top_k,omitempty"`
	LogLevel     string `yaml:"log_level,omitempty"`
}

// HomeDir returns the absolute path to ~/.hrmatch/.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".hrmatch"), nil
}

// ConfigPath returns the absolute path to ~/.hrmatch/hrmatch.yaml.
func ConfigPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "hrmatch.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the default Config written on first hrmatch init.
func DefaultConfig() (*Config, error) {
	dir, err := HomeDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		RosterPath:   filepath.Join(dir, "employees.json"),
		Mode:         ModeSemantic,
		CacheDir:     filepath.Join(dir, "store"),
		CacheBackend: CacheDir,
		TopK:         5,
		LogLevel:     "info",
	}, nil
}

// Load reads and parses ~/.hrmatch/hrmatch.yaml. Missing keys take default
// values, and HR_MODE overrides the configured mode.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}

	mode, err := GetConfigValue("HR_MODE")
	if err != nil {
		return nil, err
	}
	if mode != "" {
		cfg.Mode = mode
	}

	// Expand ~ in paths at load time.
	if cfg.RosterPath, err = ExpandPath(cfg.RosterPath); err != nil {
		return nil, err
	}
	if cfg.CacheDir, err = ExpandPath(cfg.CacheDir); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	var errs []error
	switch c.Mode {
	case ModeSemantic, ModeLexical:
	default:
		errs = append(errs, fmt.Errorf("invalid mode %q (want %s or %s)", c.Mode, ModeSemantic, ModeLexical))
	}
	switch c.CacheBackend {
	case CacheDir, CacheBadger:
	default:
		errs = append(errs, fmt.Errorf("invalid cache_backend %q (want %s or %s)", c.CacheBackend, CacheDir, CacheBadger))
	}
	if c.TopK <= 0 {
		errs = append(errs, fmt.Errorf("top_k must be positive, got %d", c.TopK))
	}
	if c.RosterPath == "" {
		errs = append(errs, errors.New("roster_path is required"))
	}
	return errors.Join(errs...)
}

// Save marshals cfg and writes it to ~/.hrmatch/hrmatch.yaml.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}
