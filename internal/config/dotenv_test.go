package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeDotEnv(t *testing.T, home, body string) string {
	t.Helper()
	dir := filepath.Join(home, ".hrmatch")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(dir, ".env")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadDotEnv_NotExist(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	m, err := LoadDotEnv()
	if err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if len(m) != 0 {
		t.Fatalf("expected empty map, got %v", m)
	}
}

func TestLoadDotEnv_ParsesKeyValue(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeDotEnv(t, home, "# comment\nA=1\n\nnot a pair\nB=two=2\n=novalue\n")

	m, err := LoadDotEnv()
	if err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if m["A"] != "1" || m["B"] != "two=2" {
		t.Fatalf("unexpected map: %v", m)
	}
	if len(m) != 2 {
		t.Fatalf("expected 2 keys, got %v", m)
	}
}

func TestParseDotEnv_ExportAndQuotes(t *testing.T) {
	m, err := parseDotEnv(strings.NewReader("export HR_EMBED_PROVIDER=ollama\nHR_EMBED_MODEL=\"nomic-embed-text\"\nOLLAMA_MODEL='llama3'\nODD=\"x'\n"))
	if err != nil {
		t.Fatalf("parseDotEnv: %v", err)
	}
	want := map[string]string{
		"HR_EMBED_PROVIDER": "ollama",
		"HR_EMBED_MODEL":    "nomic-embed-text",
		"OLLAMA_MODEL":      "llama3",
		"ODD":               "\"x'",
	}
	for k, v := range want {
		if m[k] != v {
			t.Fatalf("%s: got %q want %q", k, m[k], v)
		}
	}
}

func TestGetConfigValue_EnvOverridesDotEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeDotEnv(t, home, "K=fromdotenv\nONLY_FILE=x\n")
	t.Setenv("K", "fromenv")

	v, err := GetConfigValue("K")
	if err != nil {
		t.Fatalf("GetConfigValue: %v", err)
	}
	if v != "fromenv" {
		t.Fatalf("expected env override, got %q", v)
	}

	v, err = GetConfigValue("ONLY_FILE")
	if err != nil {
		t.Fatalf("GetConfigValue: %v", err)
	}
	if v != "x" {
		t.Fatalf("expected dotenv fallback, got %q", v)
	}
}

func TestEnsureDotEnvTemplate_DoesNotOverwrite(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	p := writeDotEnv(t, home, "HR_EMBED_PROVIDER=keep\n")

	if err := EnsureDotEnvTemplate(); err != nil {
		t.Fatalf("EnsureDotEnvTemplate: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "HR_EMBED_PROVIDER=keep\n" {
		t.Fatalf("template overwrote existing file: %q", string(b))
	}
}

func TestEnsureDotEnvTemplate_CreatesWhenMissing(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := EnsureDotEnvTemplate(); err != nil {
		t.Fatalf("EnsureDotEnvTemplate: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(home, ".hrmatch", ".env"))
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range EnvKeys {
		if !strings.Contains(string(b), "\n"+k.Name+"=\n") {
			t.Fatalf("template missing %s:\n%s", k.Name, b)
		}
	}
	info, err := os.Stat(filepath.Join(home, ".hrmatch", ".env"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("template must be private, got %v", info.Mode().Perm())
	}

	// The template leaves every key empty, so lookups still come back blank.
	m, err := LoadDotEnv()
	if err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if m["HR_EMBED_PROVIDER"] != "" {
		t.Fatalf("template must not set values: %v", m)
	}
}
