package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const (
	manifestFile      = "index_manifest.json"
	defaultVectorFile = "embeddings.f32"
	defaultIndexFile  = "index.flat"
)

// DirStore persists artifacts as files in a directory:
// index_manifest.json, embeddings.f32 and index.flat.
//
// Save writes into a temporary sibling directory and swaps it into place, so
// readers never observe a partially written set. Concurrent writers from
// different processes are serialized with a file lock.
type DirStore struct {
	dir         string
	lockTimeout time.Duration
}

// NewDirStore returns a store rooted at dir. The directory is created on Save.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir, lockTimeout: 30 * time.Second}
}

// Dir returns the store's root directory.
func (s *DirStore) Dir() string { return s.dir }

func (s *DirStore) LoadManifest(_ context.Context) (*Manifest, error) {
	p := filepath.Join(s.dir, manifestFile)
	b, err := readArtifact(p)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%w: invalid manifest JSON %s: %v", ErrCorrupt, p, err)
	}
	if m.Dim <= 0 {
		return nil, fmt.Errorf("%w: invalid dim in manifest: %d", ErrCorrupt, m.Dim)
	}
	if m.VectorFile == "" {
		m.VectorFile = defaultVectorFile
	}
	if m.IndexFile == "" {
		m.IndexFile = defaultIndexFile
	}
	return &m, nil
}

func (s *DirStore) LoadEmbeddings(_ context.Context, m *Manifest) (*Matrix, error) {
	name := m.VectorFile
	if name == "" {
		name = defaultVectorFile
	}
	b, err := readArtifact(filepath.Join(s.dir, name))
	if err != nil {
		return nil, err
	}
	return DecodeMatrix(b, len(m.Profiles), m.Dim)
}

func (s *DirStore) LoadIndex(ctx context.Context) (*FlatIndex, error) {
	name := defaultIndexFile
	if m, err := s.LoadManifest(ctx); err == nil && m.IndexFile != "" {
		name = m.IndexFile
	}
	b, err := readArtifact(filepath.Join(s.dir, name))
	if err != nil {
		return nil, err
	}
	x := &FlatIndex{}
	if err := x.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return x, nil
}

func (s *DirStore) Save(ctx context.Context, a Artifacts) error {
	if a.Manifest.VectorFile == "" {
		a.Manifest.VectorFile = defaultVectorFile
	}
	if a.Manifest.IndexFile == "" {
		a.Manifest.IndexFile = defaultIndexFile
	}
	if a.Manifest.CreatedAt == "" {
		a.Manifest.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	mb, eb, ib, err := EncodeArtifacts(a)
	if err != nil {
		return err
	}

	parent := filepath.Dir(s.dir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("cannot create cache parent %s: %w", parent, err)
	}
	unlock, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	tmpDir, err := os.MkdirTemp(parent, filepath.Base(s.dir)+".tmp-*")
	if err != nil {
		return fmt.Errorf("cannot create temp cache dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	files := []struct {
		name string
		data []byte
	}{
		{manifestFile, mb},
		{a.Manifest.VectorFile, eb},
		{a.Manifest.IndexFile, ib},
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(tmpDir, f.name), f.data, 0o644); err != nil {
			return fmt.Errorf("cannot write %s: %w", f.name, err)
		}
	}
	if err := AtomicSwap(tmpDir, s.dir); err != nil {
		return fmt.Errorf("cannot install cache: %w", err)
	}
	return nil
}

// lock takes the per-directory write lock, polling until ctx is done or the
// store's lock timeout elapses.
func (s *DirStore) lock(ctx context.Context) (func(), error) {
	lockPath := s.dir + ".lock"
	l := flock.New(lockPath)
	deadline := time.Now().Add(s.lockTimeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return nil, fmt.Errorf("cannot acquire cache lock: %w", err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("another index build is in progress (lock: %s)", lockPath)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
}

func readArtifact(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return b, nil
}

// AtomicSwap replaces destDir with srcDir by renaming.
func AtomicSwap(srcDir, destDir string) error {
	parent := filepath.Dir(destDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return err
	}
	backup := destDir + ".bak"
	_ = os.RemoveAll(backup)
	if _, err := os.Stat(destDir); err == nil {
		if err := os.Rename(destDir, backup); err != nil {
			return err
		}
	}
	if err := os.Rename(srcDir, destDir); err != nil {
		// rollback best-effort
		if _, stErr := os.Stat(backup); stErr == nil {
			_ = os.Rename(backup, destDir)
		}
		return err
	}
	_ = os.RemoveAll(backup)
	return nil
}
