package local

import (
	"context"
	"errors"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/coverbot/coverbot-backend/internal/config"
	"github.com/coverbot/coverbot-backend/internal/providers"
)

// OpenAICompatibleProvider talks to local OpenAI-compatible servers
// such as Ollama and LM Studio.
type OpenAICompatibleProvider struct {
	config config.ProviderConfig
	client *openai.Client
}

// NewOpenAICompatibleProvider creates a new OpenAI-compatible provider
func NewOpenAICompatibleProvider(cfg config.ProviderConfig) (*OpenAICompatibleProvider, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required for OpenAI-compatible provider")
	}

	// Local servers accept any key but the client requires one
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = "not-needed"
	}

	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.BaseURL = normalizeBaseURL(cfg.BaseURL)

	return &OpenAICompatibleProvider{
		config: cfg,
		client: openai.NewClientWithConfig(clientConfig),
	}, nil
}

// Name returns the provider name
func (p *OpenAICompatibleProvider) Name() string {
	return p.config.Name
}

// Complete performs a non-streaming completion
func (p *OpenAICompatibleProvider) Complete(ctx context.Context, req providers.CompletionRequest) (*providers.CompletionResponse, error) {
	resp, err := p.client.CreateChatCompletion(ctx, convertRequest(req))
	if err != nil {
		return nil, err
	}
	return convertResponse(&resp), nil
}

// ValidateConfig validates the provider configuration
func (p *OpenAICompatibleProvider) ValidateConfig() error {
	if p.config.BaseURL == "" {
		return errors.New("base URL is required")
	}
	return nil
}

// normalizeBaseURL ensures the /v1 path segment exactly once. Ollama is
// configured without it, LM Studio defaults include it.
func normalizeBaseURL(raw string) string {
	base := strings.TrimSuffix(raw, "/")
	if !strings.HasSuffix(base, "/v1") {
		base += "/v1"
	}
	return base
}
