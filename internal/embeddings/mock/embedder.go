// Package mock provides test doubles for the embeddings package.
package mock

import (
	"context"
	"hash/fnv"
	"strings"
	"sync/atomic"

	"github.com/kamusis/hrmatch/internal/embeddings"
)

// DefaultDim is the vector size produced by the default behavior.
const DefaultDim = 512

// Embedder is a test double for embeddings.Provider.
// It allows custom behavior injection via function fields.
type Embedder struct {
	// Model is reported by ModelID. Defaults to "mock:hashing".
	Model string

	// EmbedTextFunc is called by EmbedText if set.
	// If nil, uses default deterministic behavior.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc is called by EmbedTexts if set.
	// If nil, uses default deterministic behavior.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	textCalls  atomic.Int64
	batchCalls atomic.Int64
}

var _ embeddings.Provider = (*Embedder)(nil)

// NewEmbedder creates a mock embedder with default deterministic behavior.
func NewEmbedder() *Embedder {
	return &Embedder{}
}

func (m *Embedder) ModelID() string {
	if m.Model == "" {
		return "mock:hashing"
	}
	return m.Model
}

// EmbedText returns a hashed bag-of-words vector for text.
func (m *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.textCalls.Add(1)
	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}
	return HashVector(text, DefaultDim), nil
}

// EmbedTexts returns one hashed bag-of-words vector per text.
func (m *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.batchCalls.Add(1)
	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = HashVector(t, DefaultDim)
	}
	return out, nil
}

// TextCalls returns the number of EmbedText calls.
func (m *Embedder) TextCalls() int { return int(m.textCalls.Load()) }

// BatchCalls returns the number of EmbedTexts calls.
func (m *Embedder) BatchCalls() int { return int(m.batchCalls.Load()) }

// HashVector maps each lower-cased whitespace-separated word of text to a
// bucket and counts occurrences. Texts sharing words get positive similarity.
func HashVector(text string, dim int) []float32 {
	v := make([]float32, dim)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,;:!?()\"'")
		if w == "" {
			continue
		}
		h := fnv.New32a()
		h.Write([]byte(w))
		v[h.Sum32()%uint32(dim)]++
	}
	return v
}
