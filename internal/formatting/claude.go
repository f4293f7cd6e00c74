// Package formatting converts generated document text into styled,
// self-contained HTML through a formatting model, then applies deterministic
// post-processing: fence stripping, portfolio link conversion, references
// enforcement, and placeholder scrubbing.
package formatting

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// ClaudeAPIEndpoint is the Anthropic messages endpoint.
	ClaudeAPIEndpoint = "https://api.anthropic.com/v1/messages"
	// ClaudeModel is the default formatting model.
	ClaudeModel = "claude-sonnet-4-20250514"
	// ClaudeAPIVersion is the Anthropic API version header value.
	ClaudeAPIVersion = "2023-06-01"

	// maxFormatTokens leaves room for a full HTML document with embedded CSS.
	maxFormatTokens = 8000

	requestTimeout = 120 * time.Second
	maxAttempts    = 2
	retryBaseDelay = 500 * time.Millisecond
)

// FormattingProvider is the model behind HTML formatting.
type FormattingProvider interface {
	FormatHTML(ctx context.Context, prompt string) (string, error)
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ClaudeProvider formats documents through the Anthropic messages API.
type ClaudeProvider struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// NewClaudeProvider creates a provider with the default model. An empty model
// falls back to ClaudeModel.
func NewClaudeProvider(apiKey, model string) *ClaudeProvider {
	if model == "" {
		model = ClaudeModel
	}
	return &ClaudeProvider{
		apiKey:   apiKey,
		model:    model,
		endpoint: ClaudeAPIEndpoint,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// FormatHTML sends one formatting prompt and returns the raw model text.
// Rate-limited and server-side failures get one retry with backoff.
func (p *ClaudeProvider) FormatHTML(ctx context.Context, prompt string) (string, error) {
	var text string
	var err error
	delay := retryBaseDelay
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		text, err = p.sendRequest(ctx, prompt)
		if err == nil || !isRetryableStatus(err) || attempt == maxAttempts {
			return text, err
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return text, err
}

func isRetryableStatus(err error) bool {
	var apiErr *APICallError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	return false
}

func (p *ClaudeProvider) sendRequest(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(claudeRequest{
		Model:     p.model,
		MaxTokens: maxFormatTokens,
		Messages: []claudeMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", p.apiKey)
	httpReq.Header.Set("Anthropic-Version", ClaudeAPIVersion)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", &APICallError{Message: "HTTP request failed", Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &APICallError{Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &APICallError{
			Message:    fmt.Sprintf("unexpected response: %s", string(respBody)),
			StatusCode: resp.StatusCode,
		}
	}

	var claudeResp claudeResponse
	if err := json.Unmarshal(respBody, &claudeResp); err != nil {
		return "", &APICallError{Message: "failed to parse response", Cause: err}
	}
	if claudeResp.Error != nil {
		return "", &APICallError{Message: claudeResp.Error.Message}
	}
	if len(claudeResp.Content) == 0 {
		return "", &APICallError{Message: "no content in response"}
	}
	return claudeResp.Content[0].Text, nil
}
