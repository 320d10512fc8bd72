package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	internalErrors "github.com/shopassist/shop-assistant/internal/errors"
)

const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta"
	geminiDefaultModel = "gemini-pro"
)

// geminiBackend talks to the Gemini generateContent REST API.
type geminiBackend struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

func newGeminiBackend(cfg Config) *geminiBackend {
	baseURL := geminiBaseURL
	if cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = geminiDefaultModel
	}

	return &geminiBackend{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		model:      model,
	}
}

func (g *geminiBackend) name() string { return ProviderGemini }

// Request/response shapes for the generateContent endpoint.
type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *geminiBackend) complete(ctx context.Context, productContext, userQuery string) (string, error) {
	prompt := fmt.Sprintf(`Based on the following product information, please answer the user's question accurately and helpfully.

Product Data:
%s

User Question: %s

Please provide a clear, concise answer based only on the provided product information. If you cannot answer based on the available data, please say so.`, productContext, userQuery)

	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenConfig{
			Temperature:     0.3,
			MaxOutputTokens: 1000,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", internalErrors.NewBackendError(ProviderGemini, err.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", internalErrors.NewBackendError(ProviderGemini, "failed to read response body")
	}

	if resp.StatusCode != http.StatusOK {
		return "", internalErrors.NewBackendError(ProviderGemini,
			fmt.Sprintf("API error %d: %s", resp.StatusCode, truncate(string(respBody), 200)))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", internalErrors.NewBackendError(ProviderGemini, "unparseable response body")
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", internalErrors.NewBackendError(ProviderGemini, "no candidates in response")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
