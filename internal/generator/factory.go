package generator

import (
	"os"
	"strings"
)

// CreateClient creates a generation client based on the model configuration.
// modelStr takes the form "provider:model", e.g. "anthropic:claude-3-sonnet-20240229".
func CreateClient(modelStr, apiKey, baseURL string) (Client, error) {
	return CreateClientWithConfig(modelStr, ClientConfig{APIKey: apiKey, BaseURL: baseURL})
}

// CreateClientWithConfig is CreateClient with the remaining knobs exposed.
// base.Model is ignored; the provider and model come from modelStr.
func CreateClientWithConfig(modelStr string, base ClientConfig) (Client, error) {
	parts := strings.SplitN(modelStr, ":", 2)
	if len(parts) != 2 {
		return nil, Errorf(KindConfig, "invalid model format: %s (expected provider:model)", modelStr)
	}

	provider := parts[0]
	model := parts[1]

	config := base
	config.Model = model
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = DefaultMaxTokens
	}

	switch provider {
	case "anthropic":
		if config.APIKey == "" {
			config.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if config.APIKey == "" {
			return nil, Errorf(KindConfig, "Anthropic API key not provided (set ANTHROPIC_API_KEY or configure api_key)")
		}
		return NewAnthropicClient(config), nil

	case "openai":
		if config.APIKey == "" {
			config.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if config.APIKey == "" {
			return nil, Errorf(KindConfig, "OpenAI API key not provided (set OPENAI_API_KEY or configure api_key)")
		}
		return NewOpenAIClient(config), nil

	default:
		return nil, Errorf(KindConfig, "unsupported generation provider: %s (supported: anthropic, openai)", provider)
	}
}

// ProviderFromModel extracts the provider from a model string.
func ProviderFromModel(modelStr string) string {
	parts := strings.SplitN(modelStr, ":", 2)
	if len(parts) == 2 {
		return parts[0]
	}
	return "unknown"
}
