package ai

import (
	"fmt"

	"github.com/fleetops/fleetchat/config"
)

// SupportedProviders lists available provider names for display.
var SupportedProviders = []string{"azure", "openai", "anthropic", "ollama", "placeholder"}

// NewProvider creates a completion provider from the application config.
// A missing credential is an error here; the caller decides whether that
// degrades the app (nil provider → fixed "service unavailable" replies)
// or aborts.
func NewProvider(cfg config.AIConfig) (Provider, error) {
	switch cfg.Provider {
	case "azure":
		if cfg.Azure.Endpoint == "" || cfg.Azure.APIKey == "" || cfg.Azure.Deployment == "" {
			return nil, fmt.Errorf("Azure OpenAI not configured. Set AZURE_LLM_ENDPOINT, AZURE_LLM_KEY and AZURE_LLM_DEPLOYMENT_NAME")
		}
		return NewAzureOpenAI(cfg.Azure.Endpoint, cfg.Azure.APIKey, cfg.Azure.Deployment, cfg.Azure.APIVersion), nil

	case "openai":
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key not set. Set OPENAI_API_KEY")
		}
		return NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.Model), nil

	case "anthropic":
		if cfg.Anthropic.APIKey == "" {
			return nil, fmt.Errorf("Anthropic API key not set. Set ANTHROPIC_API_KEY")
		}
		return NewAnthropic(cfg.Anthropic.APIKey, cfg.Anthropic.Model), nil

	case "ollama":
		return NewOllama(cfg.Ollama.Host, cfg.Ollama.Model), nil

	case "placeholder", "":
		return NewPlaceholder(), nil

	default:
		return nil, fmt.Errorf("unknown AI provider %q. Supported: azure, openai, anthropic, ollama, placeholder", cfg.Provider)
	}
}
