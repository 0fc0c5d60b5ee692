package index

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// EncodeMatrix serializes m as raw little-endian float32 values. The shape is
// recorded in the manifest.
func EncodeMatrix(m *Matrix) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(m.Data) * 4)
	if err := binary.Write(&buf, binary.LittleEndian, m.Data); err != nil {
		return nil, fmt.Errorf("cannot encode embeddings: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeMatrix parses a matrix of the given shape.
func DecodeMatrix(b []byte, rows, dim int) (*Matrix, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: invalid dim %d", ErrCorrupt, dim)
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("%w: vector data size is not multiple of 4 bytes: %d", ErrCorrupt, len(b))
	}
	expected := rows * dim * 4
	if len(b) != expected {
		return nil, fmt.Errorf("%w: vector data size mismatch: got %d want %d (rows=%d dim=%d)", ErrCorrupt, len(b), expected, rows, dim)
	}
	data := make([]float32, rows*dim)
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &Matrix{Rows: rows, Dim: dim, Data: data}, nil
}
