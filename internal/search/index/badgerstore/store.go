// Package badgerstore persists semantic index artifacts in a BadgerDB database.
package badgerstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/kamusis/hrmatch/internal/search/index"
)

var (
	keyManifest   = []byte("index/manifest")
	keyEmbeddings = []byte("index/embeddings")
	keyIndex      = []byte("index/flat")
)

// Store implements index.Store on top of BadgerDB. All three artifacts are
// written in one transaction.
type Store struct {
	db *badger.DB
}

var _ index.Store = (*Store)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// Open opens (creating if needed) a Badger database at dir. An empty dir
// opens an in-memory database.
func Open(dir string) (*Store, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("cannot create cache dir %s: %w", dir, err)
		}
		opts = badger.DefaultOptions(dir)
	}
	opts.Logger = &badgerLoggerAdapter{logger: slog.Default().With("component", "badger")}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("cannot open badger cache: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(key []byte) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%s: %w", key, index.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", key, err)
	}
	return out, nil
}

func (s *Store) LoadManifest(_ context.Context) (*index.Manifest, error) {
	b, err := s.get(keyManifest)
	if err != nil {
		return nil, err
	}
	var m index.Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%w: invalid manifest JSON: %v", index.ErrCorrupt, err)
	}
	return &m, nil
}

func (s *Store) LoadEmbeddings(_ context.Context, m *index.Manifest) (*index.Matrix, error) {
	b, err := s.get(keyEmbeddings)
	if err != nil {
		return nil, err
	}
	return index.DecodeMatrix(b, len(m.Profiles), m.Dim)
}

func (s *Store) LoadIndex(_ context.Context) (*index.FlatIndex, error) {
	b, err := s.get(keyIndex)
	if err != nil {
		return nil, err
	}
	x := &index.FlatIndex{}
	if err := x.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return x, nil
}

// Save replaces the persisted artifacts. The manifest is deleted first and
// written last, so an interrupted save leaves no manifest and the next load
// rebuilds. The matrix and index go through a WriteBatch, which splits large
// payloads across transactions.
func (s *Store) Save(_ context.Context, a index.Artifacts) error {
	mb, eb, ib, err := index.EncodeArtifacts(a)
	if err != nil {
		return err
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(keyManifest)
	}); err != nil {
		return fmt.Errorf("cannot clear manifest: %w", err)
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	if err := wb.Set(keyEmbeddings, eb); err != nil {
		return fmt.Errorf("cannot write embeddings: %w", err)
	}
	if err := wb.Set(keyIndex, ib); err != nil {
		return fmt.Errorf("cannot write index: %w", err)
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("cannot write artifacts: %w", err)
	}

	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(keyManifest, mb)
	}); err != nil {
		return fmt.Errorf("cannot write manifest: %w", err)
	}
	return nil
}
