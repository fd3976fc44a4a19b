package factory

import (
	"fmt"

	"github.com/coverbot/coverbot-backend/internal/config"
	"github.com/coverbot/coverbot-backend/internal/providers"
	"github.com/coverbot/coverbot-backend/internal/providers/local"
	"github.com/coverbot/coverbot-backend/internal/providers/openai"
)

// CreateProvider creates a provider instance based on configuration
func CreateProvider(cfg config.ProviderConfig) (providers.Provider, error) {
	switch cfg.Kind {
	case config.ProviderOpenAI:
		return openai.NewProvider(cfg)
	case config.ProviderOllama, config.ProviderLMStudio:
		// both expose an OpenAI-compatible API
		return local.NewOpenAICompatibleProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown provider kind: %s", cfg.Kind)
	}
}
