package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// EnvKey documents one backend setting read through GetConfigValue.
type EnvKey struct {
	Name string
	Help string
}

// EnvKeys lists the settings written to the .env template, in template order.
var EnvKeys = []EnvKey{
	{"HR_EMBED_PROVIDER", "openai | ollama; empty keeps hrmatch on lexical retrieval"},
	{"HR_EMBED_MODEL", "embedding model; defaults to text-embedding-3-small (openai) or all-minilm (ollama)"},
	{"HR_EMBED_API_KEY", "required for openai"},
	{"HR_EMBED_BASE_URL", "OpenAI-compatible endpoint or Ollama server for embeddings"},
	{"OLLAMA_URL", "Ollama server for written recommendations (default http://127.0.0.1:11434)"},
	{"OLLAMA_MODEL", "chat model for written recommendations (default llama3)"},
	{"HR_MODE", "semantic | lexical; overrides mode in hrmatch.yaml"},
}

// DotEnvPath returns the path of the backend settings file, ~/.hrmatch/.env.
func DotEnvPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".env"), nil
}

// LoadDotEnv reads ~/.hrmatch/.env. A missing file yields an empty map.
func LoadDotEnv() (map[string]string, error) {
	p, err := DotEnvPath()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", p, err)
	}
	defer f.Close()

	vals, err := parseDotEnv(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", p, err)
	}
	return vals, nil
}

// parseDotEnv reads KEY=VALUE lines. Blank lines, # comments and lines
// without a key are skipped. An optional "export " prefix is accepted and
// one pair of matching surrounding quotes is removed from the value.
func parseDotEnv(r io.Reader) (map[string]string, error) {
	out := make(map[string]string)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		k, v, ok := strings.Cut(line, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			continue
		}
		out[k] = unquote(v)
	}
	return out, sc.Err()
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

// GetConfigValue returns key from the process environment, falling back to
// ~/.hrmatch/.env. Unset keys return "".
func GetConfigValue(key string) (string, error) {
	if v := os.Getenv(key); v != "" {
		return v, nil
	}
	vals, err := LoadDotEnv()
	if err != nil {
		return "", err
	}
	return vals[key], nil
}

// EnsureDotEnvTemplate writes a commented template of EnvKeys to
// ~/.hrmatch/.env unless the file already exists.
func EnsureDotEnvTemplate() error {
	p, err := DotEnvPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", filepath.Dir(p), err)
	}
	if _, err := os.Stat(p); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("cannot stat %s: %w", p, err)
	}

	var b strings.Builder
	b.WriteString("# hrmatch backend settings. Process environment variables take precedence.\n")
	for _, k := range EnvKeys {
		fmt.Fprintf(&b, "\n# %s\n%s=\n", k.Help, k.Name)
	}
	// The file may hold an API key.
	if err := os.WriteFile(p, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("cannot write %s: %w", p, err)
	}
	return nil
}
