package badgerstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamusis/hrmatch/internal/embeddings"
	"github.com/kamusis/hrmatch/internal/embeddings/mock"
	"github.com/kamusis/hrmatch/internal/roster"
	"github.com/kamusis/hrmatch/internal/search/index"
)

func TestStore_NotFound(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.LoadManifest(context.Background())
	assert.ErrorIs(t, err, index.ErrNotFound)
	_, err = s.LoadIndex(context.Background())
	assert.ErrorIs(t, err, index.ErrNotFound)
}

func TestStore_ManagerReusesCache(t *testing.T) {
	profiles, err := roster.Load(filepath.Join("..", "..", "..", "..", "testdata", "employees.json"))
	require.NoError(t, err)

	dir := t.TempDir()
	ctx := context.Background()

	s1, err := Open(dir)
	require.NoError(t, err)
	first := index.NewManager(ctx, profiles, embeddings.Available(), mock.NewEmbedder(), s1)
	require.True(t, first.Available(), first.Status().Reason)
	require.NoError(t, s1.Close())

	s2, err := Open(dir)
	require.NoError(t, err)
	defer s2.Close()

	emb := mock.NewEmbedder()
	second := index.NewManager(ctx, profiles, embeddings.Available(), emb, s2)
	assert.True(t, second.Available())
	assert.True(t, second.FromCache())
	assert.Zero(t, emb.BatchCalls())

	m, err := s2.LoadManifest(ctx)
	require.NoError(t, err)
	assert.Equal(t, roster.Hash(profiles), m.ProfileHash)
	assert.Len(t, m.Profiles, len(profiles))
}

func sampleArtifacts(t *testing.T) index.Artifacts {
	t.Helper()
	mat, err := index.NewMatrix([][]float32{{1, 0}, {0, 1}})
	require.NoError(t, err)
	idx := index.NewFlatIndex(2)
	require.NoError(t, idx.AddMatrix(mat))
	return index.Artifacts{
		Manifest: index.Manifest{
			ModelID:     "mock:hashing",
			Dim:         2,
			ProfileHash: "h",
			Profiles:    []roster.Profile{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}},
		},
		Embeddings: mat,
		Index:      idx,
	}
}

func TestStore_SaveRejectsInvalidArtifacts(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	a := sampleArtifacts(t)
	a.Manifest.Profiles = a.Manifest.Profiles[:1]
	assert.Error(t, s.Save(ctx, a), "row count mismatch")

	a = sampleArtifacts(t)
	a.Manifest.Dim = 0
	assert.Error(t, s.Save(ctx, a), "zero dim")

	a = sampleArtifacts(t)
	a.Index = nil
	assert.Error(t, s.Save(ctx, a), "missing index")

	_, err = s.LoadManifest(ctx)
	assert.ErrorIs(t, err, index.ErrNotFound)
}

func TestStore_SaveRoundTrip(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	a := sampleArtifacts(t)
	require.NoError(t, s.Save(ctx, a))
	a.Manifest.ProfileHash = "h2"
	require.NoError(t, s.Save(ctx, a))

	m, err := s.LoadManifest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "h2", m.ProfileHash)

	emb, err := s.LoadEmbeddings(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, a.Embeddings.Data, emb.Data)

	x, err := s.LoadIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, x.Len())
}
