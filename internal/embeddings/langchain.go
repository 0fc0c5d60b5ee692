package embeddings

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	lcembeddings "github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// langchainProvider adapts a langchaingo embedder to Provider.
type langchainProvider struct {
	modelID  string
	embedder lcembeddings.Embedder
	logger   *slog.Logger
}

// NewOpenAI constructs an OpenAI-compatible embeddings provider.
func NewOpenAI(cfg *Config) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("embeddings API key is not configured (set HR_EMBED_API_KEY)")
	}
	client, err := openai.New(
		openai.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")),
		openai.WithToken(cfg.APIKey),
		openai.WithEmbeddingModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create openai client: %w", err)
	}
	e, err := lcembeddings.NewEmbedder(client, lcembeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}
	return newLangchainProvider("openai:"+cfg.Model, e), nil
}

// NewOllama constructs an embeddings provider backed by a local Ollama server.
func NewOllama(cfg *Config) (Provider, error) {
	client, err := ollama.New(
		ollama.WithServerURL(cfg.BaseURL),
		ollama.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create ollama client: %w", err)
	}
	e, err := lcembeddings.NewEmbedder(client)
	if err != nil {
		return nil, err
	}
	return newLangchainProvider("ollama:"+cfg.Model, e), nil
}

func newLangchainProvider(modelID string, e lcembeddings.Embedder) *langchainProvider {
	return &langchainProvider{
		modelID:  modelID,
		embedder: e,
		logger:   slog.Default().With("component", "embeddings", "model", modelID),
	}
}

func (p *langchainProvider) ModelID() string {
	return p.modelID
}

func (p *langchainProvider) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("cannot embed empty text")
	}
	v, err := p.embedder.EmbedQuery(ctx, text)
	if err != nil {
		p.logger.Error("failed to generate embedding", "err", err)
		return nil, err
	}
	if len(v) == 0 {
		return nil, fmt.Errorf("embeddings response missing embedding")
	}
	return v, nil
}

func (p *langchainProvider) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	p.logger.Debug("generating embeddings for texts", "count", len(texts))
	out, err := p.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		p.logger.Error("failed to generate embeddings", "count", len(texts), "err", err)
		return nil, err
	}
	if len(out) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(out), len(texts))
	}
	return out, nil
}
