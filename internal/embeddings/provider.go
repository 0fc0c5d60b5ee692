package embeddings

import (
	"context"
	"fmt"

	"github.com/kamusis/hrmatch/internal/config"
)

// Provider embeds text into fixed-length float vectors.
//
// Implementations must be deterministic for the same input text and model,
// and safe for concurrent use.
type Provider interface {
	ModelID() string
	EmbedText(ctx context.Context, text string) ([]float32, error)
	// EmbedTexts returns one vector per input, in input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Config contains the resolved embeddings configuration.
type Config struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// LoadConfig resolves embeddings config from environment variables first, then ~/.hrmatch/.env.
func LoadConfig() (*Config, error) {
	provider, err := config.GetConfigValue("HR_EMBED_PROVIDER")
	if err != nil {
		return nil, err
	}
	model, err := config.GetConfigValue("HR_EMBED_MODEL")
	if err != nil {
		return nil, err
	}
	apiKey, err := config.GetConfigValue("HR_EMBED_API_KEY")
	if err != nil {
		return nil, err
	}
	baseURL, err := config.GetConfigValue("HR_EMBED_BASE_URL")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Provider: provider,
		Model:    model,
		APIKey:   apiKey,
		BaseURL:  baseURL,
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	switch c.Provider {
	case "openai":
		if c.BaseURL == "" {
			c.BaseURL = "https://api.openai.com/v1"
		}
		if c.Model == "" {
			c.Model = "text-embedding-3-small"
		}
	case "ollama":
		if c.BaseURL == "" {
			c.BaseURL = "http://127.0.0.1:11434"
		}
		if c.Model == "" {
			c.Model = "all-minilm"
		}
	}
}

// NewFromConfig returns an embeddings provider.
func NewFromConfig(cfg *Config) (Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("embeddings config is nil")
	}
	if cfg.Provider == "" {
		return nil, fmt.Errorf("embeddings provider is not configured (set HR_EMBED_PROVIDER)")
	}
	switch cfg.Provider {
	case "openai":
		return NewOpenAI(cfg)
	case "ollama":
		return NewOllama(cfg)
	default:
		return nil, fmt.Errorf("unsupported embeddings provider: %s", cfg.Provider)
	}
}
