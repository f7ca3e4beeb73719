package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/codelovable/codelovable/internal/model"
)

// AnthropicClient implements Client against the Anthropic messages API.
type AnthropicClient struct {
	client  *http.Client
	config  ClientConfig
	baseURL string
}

// anthropicMessage represents a message in Anthropic API format
type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// anthropicRequest represents a request to the Anthropic messages API
type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

// anthropicResponse represents a response from the Anthropic messages API
type anthropicResponse struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Role    string `json:"role"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model      string `json:"model"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// NewAnthropicClient creates a new Anthropic generation client
func NewAnthropicClient(config ClientConfig) *AnthropicClient {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}

	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = DefaultMaxTokens
	}

	return &AnthropicClient{
		client: &http.Client{
			Timeout: config.Timeout,
		},
		config:  config,
		baseURL: baseURL,
	}
}

// RequestGeneration implements Client.RequestGeneration
func (c *AnthropicClient) RequestGeneration(ctx context.Context, req model.GenerationRequest) (*model.GenerationResult, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	if c.config.APIKey == "" {
		return nil, Errorf(KindConfig, "Anthropic API key not configured")
	}

	request := anthropicRequest{
		Model:       c.config.Model,
		MaxTokens:   c.config.MaxTokens,
		Temperature: 0.3,
		System:      SystemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: BuildUserPrompt(req)},
		},
	}

	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, Errorf(KindTransport, "failed to marshal request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/messages", bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, Errorf(KindTransport, "failed to create request: %v", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.config.APIKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, Errorf(KindTransport, "Anthropic API error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		kind := KindBackendRejected
		if resp.StatusCode >= http.StatusInternalServerError {
			kind = KindTransport
		}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			kind = KindConfig
		}
		return nil, Errorf(kind, "Anthropic API returned status %d: %s", resp.StatusCode, string(body))
	}

	var response anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, Errorf(KindMalformedResponse, "failed to decode response: %v", err)
	}

	var content string
	if len(response.Content) > 0 && response.Content[0].Type == "text" {
		content = response.Content[0].Text
	}
	if content == "" {
		return nil, Errorf(KindMalformedResponse, "Anthropic response carried no text content")
	}

	return ParseResult(content)
}

// ModelName implements Client.ModelName
func (c *AnthropicClient) ModelName() string {
	return c.config.Model
}

// IsAvailable implements Client.IsAvailable
func (c *AnthropicClient) IsAvailable() bool {
	return c.config.APIKey != "" && c.config.Model != ""
}
