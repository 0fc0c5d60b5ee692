package answer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/kamusis/hrmatch/internal/config"
	"github.com/kamusis/hrmatch/internal/roster"
)

const (
	defaultOllamaURL   = "http://127.0.0.1:11434"
	defaultOllamaModel = "llama3"
)

// OllamaConfig selects the Ollama server and chat model.
type OllamaConfig struct {
	URL   string
	Model string
}

// LoadOllamaConfig resolves OLLAMA_URL and OLLAMA_MODEL from the environment
// or ~/.hrmatch/.env.
func LoadOllamaConfig() (*OllamaConfig, error) {
	url, err := config.GetConfigValue("OLLAMA_URL")
	if err != nil {
		return nil, err
	}
	model, err := config.GetConfigValue("OLLAMA_MODEL")
	if err != nil {
		return nil, err
	}
	cfg := &OllamaConfig{URL: strings.TrimSpace(url), Model: strings.TrimSpace(model)}
	if cfg.URL == "" {
		cfg.URL = defaultOllamaURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultOllamaModel
	}
	return cfg, nil
}

// Generator writes recommendation text with a chat model and falls back to
// Template on any failure.
type Generator struct {
	model  llms.Model
	logger *slog.Logger
}

// New wraps an llms.Model. A nil model always produces the template.
func New(model llms.Model) *Generator {
	return &Generator{
		model:  model,
		logger: slog.Default().With("component", "answer"),
	}
}

// NewOllama builds a Generator backed by an Ollama chat model.
func NewOllama(cfg *OllamaConfig) (*Generator, error) {
	client, err := ollama.New(
		ollama.WithServerURL(cfg.URL),
		ollama.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}
	return New(client), nil
}

// Answer never fails; the error paths log and return Template.
func (g *Generator) Answer(ctx context.Context, query string, profiles []roster.Profile) string {
	if g == nil || g.model == nil {
		return Template(query, profiles)
	}
	text, err := g.generate(ctx, query, profiles)
	if err != nil {
		g.logger.Warn("answer generation failed, using template", "err", err)
		return Template(query, profiles)
	}
	if text == "" {
		g.logger.Debug("model returned empty answer, using template")
		return Template(query, profiles)
	}
	return text
}

func (g *Generator) generate(ctx context.Context, query string, profiles []roster.Profile) (string, error) {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(SystemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(BuildPrompt(query, profiles))},
		},
	}
	resp, err := g.model.GenerateContent(ctx, content)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}
