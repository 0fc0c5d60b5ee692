package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kamusis/hrmatch/internal/answer"
	"github.com/kamusis/hrmatch/internal/config"
	"github.com/kamusis/hrmatch/internal/embeddings"
	"github.com/kamusis/hrmatch/internal/retrieval"
	"github.com/kamusis/hrmatch/internal/roster"
	"github.com/kamusis/hrmatch/internal/search/index"
	"github.com/kamusis/hrmatch/internal/search/index/badgerstore"
)

// session holds everything a command needs to answer queries.
type session struct {
	cfg      *config.Config
	profiles []roster.Profile
	manager  *index.Manager
	engine   *retrieval.Engine
	closers  []func() error
}

type sessionOptions struct {
	// semantic initializes the semantic index manager even in lexical mode.
	semantic bool
	// force rebuilds the index even when the cache matches.
	force bool
	// mode overrides the configured mode when non-empty.
	mode retrieval.Mode
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w\nRun 'hrmatch init' first.", err)
	}
	return cfg, nil
}

func openSession(ctx context.Context, opts sessionOptions) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	profiles, err := roster.Load(cfg.RosterPath)
	if err != nil {
		return nil, err
	}

	mode := opts.mode
	if mode == "" {
		if mode, err = retrieval.ParseMode(cfg.Mode); err != nil {
			return nil, err
		}
	}

	s := &session{cfg: cfg, profiles: profiles}
	var semantic retrieval.SemanticSearcher
	if opts.semantic || mode == retrieval.Semantic {
		prov, capability := embeddings.Probe(embeddings.LoadConfig)
		var store index.Store
		if capability.Available {
			if store, err = s.openStore(); err != nil {
				slog.Warn("cannot open index cache, using lexical retrieval", "backend", cfg.CacheBackend, "err", err)
				capability = embeddings.Unavailable("cannot open cache: " + err.Error())
			}
		}
		s.manager = index.NewManager(ctx, profiles, capability, prov, store, index.WithForceRebuild(opts.force))
		semantic = s.manager
	}

	s.engine = retrieval.New(profiles, semantic, newAnswerer(), mode)
	return s, nil
}

// openStore opens the configured cache backend.
func (s *session) openStore() (index.Store, error) {
	switch s.cfg.CacheBackend {
	case config.CacheBadger:
		st, err := badgerstore.Open(s.cfg.CacheDir)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, st.Close)
		return st, nil
	default:
		return index.NewDirStore(s.cfg.CacheDir), nil
	}
}

// Close releases the cache store.
func (s *session) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// closeSession closes s and logs any failure. Commands defer it after their
// output is written, so the error has nowhere else to go.
func closeSession(s *session) {
	if err := s.Close(); err != nil {
		slog.Warn("cannot close session", "err", err)
	}
}

// newAnswerer returns an Ollama-backed generator, or a template-only one when
// the client cannot be created.
func newAnswerer() *answer.Generator {
	cfg, err := answer.LoadOllamaConfig()
	if err != nil {
		slog.Warn("answer generation disabled", "err", err)
		return answer.New(nil)
	}
	g, err := answer.NewOllama(cfg)
	if err != nil {
		slog.Warn("answer generation disabled", "err", err)
		return answer.New(nil)
	}
	return g
}
