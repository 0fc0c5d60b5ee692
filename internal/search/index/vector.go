package index

import (
	"math"

	"github.com/hupe1980/vecgo/distance"
)

// Cosine computes cosine similarity between two vectors of equal length.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrVectorLengthMismatch
	}
	na := float64(distance.Dot(a, a))
	nb := float64(distance.Dot(b, b))
	den := math.Sqrt(na) * math.Sqrt(nb)
	if den == 0 {
		return 0, nil
	}
	return float64(distance.Dot(a, b)) / den, nil
}

// NormalizeL2 returns a new vector normalized to unit L2 norm. A zero vector
// is returned as an unmodified copy.
func NormalizeL2(v []float32) []float32 {
	if out, ok := distance.NormalizeL2Copy(v); ok {
		return out
	}
	out := make([]float32, len(v))
	copy(out, v)
	return out
}
