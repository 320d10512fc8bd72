package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	internalErrors "github.com/shopassist/shop-assistant/internal/errors"
)

const (
	groqBaseURL      = "https://api.groq.com/openai/v1"
	groqDefaultModel = "llama-3.3-70b-versatile"

	systemPrompt = "You are a helpful shopping assistant. Answer questions about products based on the provided data."
)

// groqBackend talks to Groq's OpenAI-compatible chat-completions API.
type groqBackend struct {
	client *openai.Client
	model  string
}

func newGroqBackend(cfg Config) *groqBackend {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = groqBaseURL
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	model := cfg.Model
	if model == "" {
		model = groqDefaultModel
	}

	return &groqBackend{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

func (g *groqBackend) name() string { return ProviderGroq }

func (g *groqBackend) complete(ctx context.Context, productContext, userQuery string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Product Data:\n%s\n\nQuestion: %s", productContext, userQuery),
			},
		},
		Temperature: 0.3,
		MaxTokens:   1000,
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", internalErrors.NewBackendError(ProviderGroq, "no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

// parseAPIError extracts a human-readable reason from a go-openai error
// and wraps it so it maps to a 502 upstream.
func parseAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return internalErrors.NewBackendError(ProviderGroq,
			fmt.Sprintf("API error %d: %s", apiErr.HTTPStatusCode, apiErr.Message))
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return internalErrors.NewBackendError(ProviderGroq,
			fmt.Sprintf("request error %d: %s", reqErr.HTTPStatusCode, string(reqErr.Body)))
	}

	return internalErrors.NewBackendError(ProviderGroq, err.Error())
}
