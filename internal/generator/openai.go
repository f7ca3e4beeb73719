package generator

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"

	"github.com/codelovable/codelovable/internal/model"
)

// OpenAIClient implements Client against the OpenAI chat API.
type OpenAIClient struct {
	client *openai.Client
	config ClientConfig
}

// NewOpenAIClient creates a new OpenAI generation client
func NewOpenAIClient(config ClientConfig) *OpenAIClient {
	client := openai.NewClient(config.APIKey)

	// Set custom base URL if provided
	if config.BaseURL != "" {
		clientConfig := openai.DefaultConfig(config.APIKey)
		clientConfig.BaseURL = config.BaseURL
		client = openai.NewClientWithConfig(clientConfig)
	}

	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = DefaultMaxTokens
	}

	return &OpenAIClient{
		client: client,
		config: config,
	}
}

// RequestGeneration implements Client.RequestGeneration
func (o *OpenAIClient) RequestGeneration(ctx context.Context, req model.GenerationRequest) (*model.GenerationResult, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	if o.config.APIKey == "" {
		return nil, Errorf(KindConfig, "OpenAI API key not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.config.Model,
		MaxTokens: o.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildUserPrompt(req)},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			switch {
			case apiErr.HTTPStatusCode == 401 || apiErr.HTTPStatusCode == 403:
				return nil, NewError(KindConfig, err)
			case apiErr.HTTPStatusCode >= 400 && apiErr.HTTPStatusCode < 500:
				return nil, NewError(KindBackendRejected, err)
			}
		}
		return nil, Errorf(KindTransport, "OpenAI API error: %v", err)
	}

	if len(resp.Choices) == 0 {
		return nil, Errorf(KindMalformedResponse, "no response from OpenAI")
	}

	return ParseResult(resp.Choices[0].Message.Content)
}

// ModelName implements Client.ModelName
func (o *OpenAIClient) ModelName() string {
	return o.config.Model
}

// IsAvailable implements Client.IsAvailable
func (o *OpenAIClient) IsAvailable() bool {
	return o.config.APIKey != "" && o.config.Model != ""
}
