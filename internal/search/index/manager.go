package index

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kamusis/hrmatch/internal/embeddings"
	"github.com/kamusis/hrmatch/internal/roster"
	"github.com/kamusis/hrmatch/internal/search"
)

const (
	// MinSimilarity is the cosine similarity a semantic match must exceed.
	MinSimilarity = 0.15

	indexVersion = 1
)

// State is the lifecycle state of a Manager.
type State int

const (
	Uninitialized State = iota
	Ready
	Unavailable
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Unavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Status is the outcome of initialization. Reason is set when State is
// Unavailable.
type Status struct {
	State  State
	Reason string
}

// Manager owns the semantic index over a roster. It is initialized once at
// construction and is read-only afterwards, so Search may be called from
// multiple goroutines.
type Manager struct {
	profiles []roster.Profile
	embedder embeddings.Provider
	store    Store
	logger   *slog.Logger
	now      func() time.Time

	force       bool
	batchSize   int
	concurrency int

	status   Status
	rows     []roster.Profile
	index    *FlatIndex
	loadedAt time.Time
	fromDisk bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
	}
}

// WithClock overrides the time source used for manifest timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithForceRebuild ignores any persisted artifacts and always rebuilds.
func WithForceRebuild(force bool) Option {
	return func(m *Manager) { m.force = force }
}

// WithBatching sets how many profile texts go into one embedding request and
// how many requests may run at once during a build.
func WithBatching(batchSize, concurrency int) Option {
	return func(m *Manager) {
		if batchSize > 0 {
			m.batchSize = batchSize
		}
		if concurrency > 0 {
			m.concurrency = concurrency
		}
	}
}

// NewManager builds or loads the semantic index for profiles. It blocks until
// initialization finishes and never fails: problems leave the manager
// Unavailable, and Search then serves lexical results.
func NewManager(ctx context.Context, profiles []roster.Profile, capability embeddings.Capability, embedder embeddings.Provider, store Store, opts ...Option) *Manager {
	m := &Manager{
		profiles:    profiles,
		embedder:    embedder,
		store:       store,
		logger:      slog.Default(),
		now:         time.Now,
		batchSize:   32,
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With("component", "semantic-index")
	m.status = m.init(ctx, capability)
	if m.status.State == Ready {
		m.logger.Info("semantic index ready", "profiles", len(m.rows), "cached", m.fromDisk)
	} else {
		m.logger.Warn("semantic index unavailable, using lexical retrieval", "reason", m.status.Reason)
	}
	return m
}

// Status reports the initialization outcome.
func (m *Manager) Status() Status { return m.status }

// Available reports whether semantic search is served from the index.
func (m *Manager) Available() bool { return m.status.State == Ready }

// FromCache reports whether the index was loaded from persisted artifacts.
func (m *Manager) FromCache() bool { return m.fromDisk }

// LoadedAt returns when the index became ready.
func (m *Manager) LoadedAt() time.Time { return m.loadedAt }

func (m *Manager) init(ctx context.Context, capability embeddings.Capability) Status {
	if !capability.Available {
		return Status{State: Unavailable, Reason: capability.Reason}
	}
	if m.embedder == nil {
		return Status{State: Unavailable, Reason: "no embeddings provider"}
	}
	if m.store == nil {
		return Status{State: Unavailable, Reason: "no cache store"}
	}
	if len(m.profiles) == 0 {
		return Status{State: Unavailable, Reason: roster.ErrRosterEmpty.Error()}
	}

	hash := roster.Hash(m.profiles)
	if !m.force {
		ok, err := m.loadCached(ctx, hash)
		if err != nil {
			return Status{State: Unavailable, Reason: "cannot load cached index: " + err.Error()}
		}
		if ok {
			m.fromDisk = true
			m.loadedAt = m.now()
			return Status{State: Ready}
		}
	}

	start := m.now()
	if err := m.build(ctx, hash); err != nil {
		return Status{State: Unavailable, Reason: "cannot build index: " + err.Error()}
	}
	m.loadedAt = m.now()
	m.logger.Info("semantic index built", "profiles", len(m.rows), "model", m.embedder.ModelID(), "took", m.loadedAt.Sub(start))
	return Status{State: Ready}
}

// loadCached installs persisted artifacts when they match the roster. A false
// result with nil error means the cache is missing or stale and must be
// rebuilt; an error means it exists but could not be read.
func (m *Manager) loadCached(ctx context.Context, hash string) (bool, error) {
	man, err := m.store.LoadManifest(ctx)
	if errors.Is(err, ErrNotFound) {
		m.logger.Info("index cache miss", "reason", "no manifest")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if man.ProfileHash != hash {
		m.logger.Info("index cache miss", "reason", "roster changed")
		return false, nil
	}
	if man.ModelID != m.embedder.ModelID() {
		m.logger.Info("index cache miss", "reason", "embedding model changed", "cached", man.ModelID, "current", m.embedder.ModelID())
		return false, nil
	}

	idx, err := m.store.LoadIndex(ctx)
	if errors.Is(err, ErrNotFound) {
		m.logger.Info("index cache miss", "reason", "no index artifact")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	emb, err := m.store.LoadEmbeddings(ctx, man)
	if err != nil {
		return false, err
	}
	if idx.Dim() != man.Dim || idx.Len() != len(man.Profiles) || emb.Rows != idx.Len() {
		return false, fmt.Errorf("%w: artifacts disagree (manifest rows=%d dim=%d, index rows=%d dim=%d)",
			ErrCorrupt, len(man.Profiles), man.Dim, idx.Len(), idx.Dim())
	}

	m.index = idx
	m.rows = man.Profiles
	m.logger.Debug("index cache hit", "created_at", man.CreatedAt)
	return true, nil
}

func (m *Manager) build(ctx context.Context, hash string) error {
	texts := make([]string, len(m.profiles))
	for i, p := range m.profiles {
		texts[i] = roster.Text(p)
	}

	vectors, err := m.embedAll(ctx, texts)
	if err != nil {
		return err
	}
	for i := range vectors {
		vectors[i] = NormalizeL2(vectors[i])
	}
	mat, err := NewMatrix(vectors)
	if err != nil {
		return err
	}
	idx := NewFlatIndex(mat.Dim)
	if err := idx.AddMatrix(mat); err != nil {
		return err
	}

	man := Manifest{
		IndexVersion: indexVersion,
		CreatedAt:    m.now().UTC().Format(time.RFC3339),
		ModelID:      m.embedder.ModelID(),
		Dim:          mat.Dim,
		Normalize:    true,
		VectorFile:   defaultVectorFile,
		IndexFile:    defaultIndexFile,
		ProfileHash:  hash,
		Profiles:     m.profiles,
	}
	if err := m.store.Save(ctx, Artifacts{Manifest: man, Embeddings: mat, Index: idx}); err != nil {
		return fmt.Errorf("cannot persist index: %w", err)
	}

	m.index = idx
	m.rows = m.profiles
	return nil
}

// embedAll embeds texts in batches, running up to m.concurrency batches at
// once. Output order matches texts.
func (m *Manager) embedAll(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)
	for start := 0; start < len(texts); start += m.batchSize {
		end := min(start+m.batchSize, len(texts))
		g.Go(func() error {
			vecs, err := m.embedder.EmbedTexts(gctx, texts[start:end])
			if err != nil {
				return fmt.Errorf("embedding profiles %d-%d: %w", start, end-1, err)
			}
			if len(vecs) != end-start {
				return fmt.Errorf("embedding count mismatch: got %d, want %d", len(vecs), end-start)
			}
			copy(out[start:end], vecs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Search returns up to topK profiles most similar to query.
//
// When the index is not ready, or the query cannot be embedded or searched,
// lexical results are returned instead with scores mapped into [0.5, 1.0].
func (m *Manager) Search(ctx context.Context, query string, topK int) []search.Result {
	if m.status.State != Ready {
		return m.fallback(query, topK)
	}
	res, err := m.semantic(ctx, query, topK)
	if err != nil {
		m.logger.Warn("semantic search failed, using lexical retrieval", "err", err)
		return m.fallback(query, topK)
	}
	return res
}

func (m *Manager) semantic(ctx context.Context, query string, topK int) ([]search.Result, error) {
	if topK <= 0 {
		return []search.Result{}, nil
	}
	qv, err := m.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}
	hits, err := m.index.Search(NormalizeL2(qv), topK*2)
	if err != nil {
		return nil, err
	}
	out := make([]search.Result, 0, topK)
	for _, h := range hits {
		if h.Row == NoMatch || h.Row >= len(m.rows) {
			continue
		}
		if float64(h.Score) <= MinSimilarity {
			continue
		}
		out = append(out, search.Result{Profile: m.rows[h.Row], Score: float64(h.Score), Why: "semantic"})
		if len(out) == topK {
			break
		}
	}
	return out, nil
}

func (m *Manager) fallback(query string, topK int) []search.Result {
	res := search.Retrieve(query, m.profiles, topK)
	for i := range res {
		res[i].Score = RemapLexical(res[i].Score)
	}
	return res
}

// RemapLexical maps a lexical score into [0.5, 1.0].
func RemapLexical(s float64) float64 {
	return 0.5 + min(max(s, 0), 1)*0.5
}
