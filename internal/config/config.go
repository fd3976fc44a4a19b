package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ProviderKind selects the chat completion backend.
type ProviderKind string

const (
	ProviderOpenAI   ProviderKind = "openai"
	ProviderOllama   ProviderKind = "ollama"
	ProviderLMStudio ProviderKind = "lmstudio"
)

type Config struct {
	Server      ServerConfig
	Provider    ProviderKind
	OpenAI      ProviderConfig
	Ollama      ProviderConfig
	LMStudio    ProviderConfig
	Redis       RedisConfig
	VehicleAPI  VehicleAPIConfig
	CORSOrigins []string
	LogLevel    string
}

type ServerConfig struct {
	Host string
	Port int
}

// ProviderConfig holds the connection settings for one completion backend.
type ProviderConfig struct {
	Kind    ProviderKind
	Name    string
	Model   string
	BaseURL string
	APIKey  string
}

type RedisConfig struct {
	URL string
	TTL int // transcript expiry in seconds
}

// VehicleAPIConfig configures the optional external VIN decode service.
// When BaseURL is empty the vehicle tool answers from mock data only.
type VehicleAPIConfig struct {
	BaseURL string
	Token   string
}

// Load reads configuration from environment variables with defaults
// matching local development. The returned struct is passed explicitly
// into constructors; nothing reads configuration globally.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8000)
	v.SetDefault("model_provider", string(ProviderOpenAI))
	v.SetDefault("openai_model", "gpt-4o")
	v.SetDefault("ollama_model", "llama3.1")
	v.SetDefault("ollama_base_url", "http://localhost:11434")
	v.SetDefault("lmstudio_model", "local-model")
	v.SetDefault("lmstudio_base_url", "http://localhost:1234/v1")
	v.SetDefault("redis_url", "redis://localhost:6379/0")
	v.SetDefault("redis_ttl", 86400)
	v.SetDefault("cors_origins", "http://localhost:3000")
	v.SetDefault("log_level", "info")

	cfg := Config{
		Server: ServerConfig{
			Host: v.GetString("host"),
			Port: v.GetInt("port"),
		},
		Provider: ProviderKind(strings.ToLower(v.GetString("model_provider"))),
		OpenAI: ProviderConfig{
			Kind:   ProviderOpenAI,
			Name:   "OpenAI",
			Model:  v.GetString("openai_model"),
			APIKey: v.GetString("openai_api_key"),
		},
		Ollama: ProviderConfig{
			Kind:    ProviderOllama,
			Name:    "Ollama",
			Model:   v.GetString("ollama_model"),
			BaseURL: v.GetString("ollama_base_url"),
		},
		LMStudio: ProviderConfig{
			Kind:    ProviderLMStudio,
			Name:    "LM Studio",
			Model:   v.GetString("lmstudio_model"),
			BaseURL: v.GetString("lmstudio_base_url"),
		},
		Redis: RedisConfig{
			URL: v.GetString("redis_url"),
			TTL: v.GetInt("redis_ttl"),
		},
		VehicleAPI: VehicleAPIConfig{
			BaseURL: v.GetString("api_base_url"),
			Token:   v.GetString("api_token"),
		},
		CORSOrigins: splitOrigins(v.GetString("cors_origins")),
		LogLevel:    v.GetString("log_level"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate fails fast on configuration the server cannot start with.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return errors.New("OPENAI_API_KEY must be set when using the openai provider")
		}
	case ProviderOllama, ProviderLMStudio:
		// local providers need no credential
	default:
		return fmt.Errorf("unsupported model provider: %q", c.Provider)
	}
	return nil
}

// ActiveProvider returns the settings for the selected backend.
func (c Config) ActiveProvider() ProviderConfig {
	switch c.Provider {
	case ProviderOllama:
		return c.Ollama
	case ProviderLMStudio:
		return c.LMStudio
	default:
		return c.OpenAI
	}
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
