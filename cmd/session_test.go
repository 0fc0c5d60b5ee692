package cmd

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kamusis/hrmatch/internal/config"
	"github.com/kamusis/hrmatch/internal/retrieval"
	"github.com/kamusis/hrmatch/internal/roster"
	"github.com/kamusis/hrmatch/internal/search/index/badgerstore"
)

// setupHome points HOME at a temp dir and writes hrmatch.yaml for the fixture roster.
func setupHome(t *testing.T, mode, backend string) *config.Config {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"HR_MODE", "HR_EMBED_PROVIDER", "HR_EMBED_MODEL", "HR_EMBED_API_KEY", "HR_EMBED_BASE_URL", "OLLAMA_URL", "OLLAMA_MODEL"} {
		t.Setenv(k, "")
	}

	rosterPath, err := filepath.Abs(filepath.Join("..", "testdata", "employees.json"))
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := config.DefaultConfig()
	if err != nil {
		t.Fatal(err)
	}
	cfg.RosterPath = rosterPath
	cfg.Mode = mode
	cfg.CacheBackend = backend
	if err := config.Save(cfg); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestOpenSession_LexicalMode(t *testing.T) {
	setupHome(t, config.ModeLexical, config.CacheDir)

	s, err := openSession(context.Background(), sessionOptions{})
	if err != nil {
		t.Fatalf("openSession: %v", err)
	}
	defer s.Close()

	if s.manager != nil {
		t.Fatalf("lexical mode must not initialize the semantic index")
	}
	resp, err := s.engine.Chat(context.Background(), "Find Python developers with 3+ years experience", s.cfg.TopK)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if resp.Mode != retrieval.Lexical || len(resp.Recommendations) == 0 {
		t.Fatalf("unexpected response: mode=%s recs=%d", resp.Mode, len(resp.Recommendations))
	}
}

func TestOpenSession_SemanticWithoutBackend(t *testing.T) {
	setupHome(t, config.ModeSemantic, config.CacheDir)

	s, err := openSession(context.Background(), sessionOptions{})
	if err != nil {
		t.Fatalf("openSession: %v", err)
	}
	defer s.Close()

	if s.manager == nil || s.manager.Available() {
		t.Fatalf("expected an unavailable semantic index")
	}
	h := s.engine.Health()
	if h.Mode != retrieval.Semantic || h.SemanticAvailable {
		t.Fatalf("unexpected health: %+v", h)
	}
	if !strings.Contains(h.Reason, "not configured") {
		t.Fatalf("unexpected reason: %q", h.Reason)
	}

	resp, err := s.engine.Chat(context.Background(), "react typescript developer", 3)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if resp.Mode != retrieval.Lexical {
		t.Fatalf("expected lexical routing, got %s", resp.Mode)
	}
}

func TestOpenSession_ModeOverride(t *testing.T) {
	setupHome(t, config.ModeSemantic, config.CacheDir)

	s, err := openSession(context.Background(), sessionOptions{mode: retrieval.Lexical})
	if err != nil {
		t.Fatalf("openSession: %v", err)
	}
	defer s.Close()
	if s.manager != nil {
		t.Fatalf("--lexical must skip the semantic index")
	}
}

func TestOpenSession_BadgerSkippedWithoutBackend(t *testing.T) {
	setupHome(t, config.ModeSemantic, config.CacheBadger)

	s, err := openSession(context.Background(), sessionOptions{semantic: true})
	if err != nil {
		t.Fatalf("openSession: %v", err)
	}
	if len(s.closers) != 0 {
		t.Fatalf("cache must not be opened when embeddings are unconfigured, got %d closers", len(s.closers))
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestOpenSession_LockedBadgerCacheFallsBackToLexical(t *testing.T) {
	cfg := setupHome(t, config.ModeSemantic, config.CacheBadger)
	// Client construction does not contact the server; the cache open fails first.
	t.Setenv("HR_EMBED_PROVIDER", "ollama")

	held, err := badgerstore.Open(cfg.CacheDir)
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	defer held.Close()

	s, err := openSession(context.Background(), sessionOptions{})
	if err != nil {
		t.Fatalf("openSession must not fail on a locked cache: %v", err)
	}
	defer closeSession(s)

	if s.manager == nil || s.manager.Available() {
		t.Fatalf("expected an unavailable semantic index")
	}
	if reason := s.manager.Status().Reason; !strings.Contains(reason, "cannot open cache") {
		t.Fatalf("unexpected reason: %q", reason)
	}
	if len(s.closers) != 0 {
		t.Fatalf("failed store must not be registered for close")
	}

	resp, err := s.engine.Chat(context.Background(), "Find Python developers with 3+ years experience", 5)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if resp.Mode != retrieval.Lexical || len(resp.Recommendations) == 0 {
		t.Fatalf("expected lexical results, got mode=%s recs=%d", resp.Mode, len(resp.Recommendations))
	}
}

func TestOpenSession_MissingConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("HR_MODE", "")

	_, err := openSession(context.Background(), sessionOptions{})
	if err == nil || !strings.Contains(err.Error(), "hrmatch init") {
		t.Fatalf("expected init hint, got %v", err)
	}
}

func TestRunQuery_TooShort(t *testing.T) {
	for _, q := range []string{" ab ", "éé"} {
		err := runQuery(nil, []string{q})
		if !errors.Is(err, retrieval.ErrQueryTooShort) {
			t.Fatalf("%q: expected ErrQueryTooShort, got %v", q, err)
		}
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelWarn,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := parseLevel(in)
		if err != nil || got != want {
			t.Fatalf("parseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := parseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestFilterCriteria(t *testing.T) {
	t.Cleanup(func() {
		flagFilterAvailability = ""
		flagFilterMinExperience = 0
		filterCmd.Flags().Lookup("min-experience").Changed = false
	})

	c, err := filterCriteria(filterCmd)
	if err != nil {
		t.Fatalf("filterCriteria: %v", err)
	}
	if c.MinExperience != nil {
		t.Fatalf("unset --min-experience must leave MinExperience nil")
	}

	if err := filterCmd.Flags().Set("min-experience", "0"); err != nil {
		t.Fatal(err)
	}
	if err := filterCmd.Flags().Set("availability", "busy"); err != nil {
		t.Fatal(err)
	}
	c, err = filterCriteria(filterCmd)
	if err != nil {
		t.Fatalf("filterCriteria: %v", err)
	}
	if c.MinExperience == nil || *c.MinExperience != 0 || c.Availability != roster.Busy {
		t.Fatalf("unexpected criteria: %+v", c)
	}

	if err := filterCmd.Flags().Set("availability", "soon"); err != nil {
		t.Fatal(err)
	}
	if _, err := filterCriteria(filterCmd); err == nil {
		t.Fatalf("expected invalid availability error")
	}
}

func TestBuildInfo_Defaults(t *testing.T) {
	oldVersion, oldCommit, oldDate := version, commit, buildDate
	t.Cleanup(func() { version, commit, buildDate = oldVersion, oldCommit, oldDate })

	version, commit, buildDate = "v1.2.3", "abc123", "2026-01-02"
	got := buildInfo()
	if got.version != "v1.2.3" || got.commit != "abc123" || got.date != "2026-01-02" {
		t.Fatalf("ldflags values must win: %+v", got)
	}

	version, commit, buildDate = "dev", "", ""
	got = buildInfo()
	if got.version == "" || got.commit == "" || got.date == "" {
		t.Fatalf("empty fields must be filled: %+v", got)
	}
}

func TestCloseSession_LogsCloseError(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	s := &session{closers: []func() error{
		func() error { return nil },
		func() error { return errors.New("value log sync failed") },
	}}
	closeSession(s)

	if !strings.Contains(buf.String(), "value log sync failed") {
		t.Fatalf("close error not logged: %q", buf.String())
	}
}
