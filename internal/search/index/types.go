package index

import (
	"fmt"

	"github.com/kamusis/hrmatch/internal/roster"
)

// Manifest binds persisted index artifacts to the roster they were built from.
type Manifest struct {
	IndexVersion int              `json:"index_version"`
	CreatedAt    string           `json:"created_at"`
	ModelID      string           `json:"model_id"`
	Dim          int              `json:"dim"`
	Normalize    bool             `json:"normalize"`
	VectorFile   string           `json:"vector_file"`
	IndexFile    string           `json:"index_file"`
	ProfileHash  string           `json:"profile_hash"`
	Profiles     []roster.Profile `json:"profiles"`
}

// Matrix is a dense row-major float32 matrix, one row per profile.
type Matrix struct {
	Rows int
	Dim  int
	Data []float32
}

// NewMatrix stacks rows into a Matrix. All rows must share one length.
func NewMatrix(rows [][]float32) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows")
	}
	dim := len(rows[0])
	if dim == 0 {
		return nil, fmt.Errorf("zero-length row")
	}
	m := &Matrix{Rows: len(rows), Dim: dim, Data: make([]float32, 0, len(rows)*dim)}
	for i, r := range rows {
		if len(r) != dim {
			return nil, fmt.Errorf("row %d: %w: got %d want %d", i, ErrVectorLengthMismatch, len(r), dim)
		}
		m.Data = append(m.Data, r...)
	}
	return m, nil
}

// Row returns row i without copying.
func (m *Matrix) Row(i int) []float32 {
	start := i * m.Dim
	return m.Data[start : start+m.Dim]
}

// Artifacts is everything a Store persists for one index build.
type Artifacts struct {
	Manifest   Manifest
	Embeddings *Matrix
	Index      *FlatIndex
}
