package index

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Store persists the three artifacts of an index build. Implementations
// return ErrNotFound (possibly wrapped) for artifacts that were never saved.
type Store interface {
	LoadManifest(ctx context.Context) (*Manifest, error)
	LoadEmbeddings(ctx context.Context, m *Manifest) (*Matrix, error)
	LoadIndex(ctx context.Context) (*FlatIndex, error)
	Save(ctx context.Context, a Artifacts) error
}

// MemoryStore keeps encoded artifacts in memory. It round-trips through the
// same encodings as the persistent stores.
type MemoryStore struct {
	mu         sync.Mutex
	manifest   []byte
	embeddings []byte
	index      []byte
	saves      int
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) LoadManifest(_ context.Context) (*Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.manifest == nil {
		return nil, fmt.Errorf("manifest: %w", ErrNotFound)
	}
	var m Manifest
	if err := json.Unmarshal(s.manifest, &m); err != nil {
		return nil, fmt.Errorf("%w: invalid manifest JSON: %v", ErrCorrupt, err)
	}
	return &m, nil
}

func (s *MemoryStore) LoadEmbeddings(_ context.Context, m *Manifest) (*Matrix, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.embeddings == nil {
		return nil, fmt.Errorf("embeddings: %w", ErrNotFound)
	}
	return DecodeMatrix(s.embeddings, len(m.Profiles), m.Dim)
}

func (s *MemoryStore) LoadIndex(_ context.Context) (*FlatIndex, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil {
		return nil, fmt.Errorf("index: %w", ErrNotFound)
	}
	x := &FlatIndex{}
	if err := x.UnmarshalBinary(s.index); err != nil {
		return nil, err
	}
	return x, nil
}

func (s *MemoryStore) Save(_ context.Context, a Artifacts) error {
	mb, eb, ib, err := EncodeArtifacts(a)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manifest, s.embeddings, s.index = mb, eb, ib
	s.saves++
	return nil
}

// Saves reports how many times Save succeeded.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// DropIndex forgets the index artifact, keeping manifest and embeddings.
func (s *MemoryStore) DropIndex() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = nil
}

// CorruptIndex replaces the index artifact with undecodable bytes.
func (s *MemoryStore) CorruptIndex() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = []byte("garbage")
}

// EncodeArtifacts validates a and returns the manifest JSON, the raw embedding
// matrix and the serialized index.
func EncodeArtifacts(a Artifacts) (manifest, embeddings, index []byte, err error) {
	if a.Embeddings == nil || a.Index == nil {
		return nil, nil, nil, fmt.Errorf("incomplete artifacts")
	}
	if a.Manifest.Dim <= 0 {
		return nil, nil, nil, fmt.Errorf("invalid dim: %d", a.Manifest.Dim)
	}
	if a.Embeddings.Rows != len(a.Manifest.Profiles) {
		return nil, nil, nil, fmt.Errorf("embedding rows %d do not match %d profiles", a.Embeddings.Rows, len(a.Manifest.Profiles))
	}
	if manifest, err = json.MarshalIndent(a.Manifest, "", "  "); err != nil {
		return nil, nil, nil, err
	}
	if embeddings, err = EncodeMatrix(a.Embeddings); err != nil {
		return nil, nil, nil, err
	}
	if index, err = a.Index.MarshalBinary(); err != nil {
		return nil, nil, nil, err
	}
	return manifest, embeddings, index, nil
}
