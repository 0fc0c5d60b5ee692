package index

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/hupe1980/vecgo/distance"
)

// NoMatch is the row reported for unfilled result slots.
const NoMatch = -1

var flatMagic = [8]byte{'H', 'R', 'F', 'L', 'A', 'T', '0', '1'}

// Hit is one nearest-neighbor candidate.
type Hit struct {
	Row   int
	Score float32
}

// FlatIndex is an exact inner-product index. It is not safe for concurrent
// writes; concurrent Search calls are safe once building is done.
type FlatIndex struct {
	dim  int
	data []float32
}

// NewFlatIndex returns an empty index for vectors of dimension dim.
func NewFlatIndex(dim int) *FlatIndex {
	return &FlatIndex{dim: dim}
}

// Dim returns the vector dimension.
func (x *FlatIndex) Dim() int { return x.dim }

// Len returns the number of indexed vectors.
func (x *FlatIndex) Len() int {
	if x.dim == 0 {
		return 0
	}
	return len(x.data) / x.dim
}

// Add appends vectors. Row numbers follow insertion order.
func (x *FlatIndex) Add(vectors ...[]float32) error {
	for _, v := range vectors {
		if len(v) != x.dim {
			return fmt.Errorf("add: %w: got %d want %d", ErrVectorLengthMismatch, len(v), x.dim)
		}
		x.data = append(x.data, v...)
	}
	return nil
}

// AddMatrix appends every row of m.
func (x *FlatIndex) AddMatrix(m *Matrix) error {
	if m.Dim != x.dim {
		return fmt.Errorf("add matrix: %w: got %d want %d", ErrVectorLengthMismatch, m.Dim, x.dim)
	}
	x.data = append(x.data, m.Data...)
	return nil
}

// Search returns exactly k hits ordered by descending inner product. Slots
// beyond the number of indexed vectors have Row == NoMatch.
func (x *FlatIndex) Search(q []float32, k int) ([]Hit, error) {
	if len(q) != x.dim {
		return nil, fmt.Errorf("search: %w: got %d want %d", ErrVectorLengthMismatch, len(q), x.dim)
	}
	if k <= 0 {
		return []Hit{}, nil
	}
	n := x.Len()
	all := make([]Hit, n)
	for i := 0; i < n; i++ {
		all[i] = Hit{Row: i, Score: distance.Dot(q, x.data[i*x.dim:(i+1)*x.dim])}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Score > all[j].Score })

	out := make([]Hit, k)
	for i := range out {
		if i < n {
			out[i] = all[i]
		} else {
			out[i] = Hit{Row: NoMatch}
		}
	}
	return out, nil
}

// MarshalBinary encodes the index as magic, dim, count and little-endian rows.
func (x *FlatIndex) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(flatMagic[:])
	hdr := [2]uint32{uint32(x.dim), uint32(x.Len())}
	if err := binary.Write(&buf, binary.LittleEndian, hdr); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, x.data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes an index produced by MarshalBinary.
func (x *FlatIndex) UnmarshalBinary(b []byte) error {
	r := bytes.NewReader(b)
	var magic [8]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil || magic != flatMagic {
		return fmt.Errorf("%w: bad index header", ErrCorrupt)
	}
	var hdr [2]uint32
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	dim, n := int(hdr[0]), int(hdr[1])
	if dim <= 0 {
		return fmt.Errorf("%w: invalid dim %d", ErrCorrupt, dim)
	}
	if int64(r.Len()) != int64(n)*int64(dim)*4 {
		return fmt.Errorf("%w: index size mismatch (rows=%d dim=%d)", ErrCorrupt, n, dim)
	}
	data := make([]float32, n*dim)
	if err := binary.Read(r, binary.LittleEndian, data); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	x.dim = dim
	x.data = data
	return nil
}
