// Package generation produces tailored document text by combining parsed
// resume data, a target job, and a style example into a prompt and sending it
// to a chat-completion model.
package generation

import (
	"context"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/jonathan/applyforge/internal/prompts"
)

// ContentProvider is the model behind content generation. Implementations
// return the raw generated text for one document.
type ContentProvider interface {
	GenerateContent(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

const (
	// DefaultModel balances quality against per-document cost; a full run
	// can issue two calls per selected job.
	DefaultModel = "gpt-4o-mini"

	defaultMaxTokens   = 2000
	defaultTemperature = 0.7
)

// OpenAIProvider generates document content through the OpenAI chat API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a provider with the default model.
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)
	return &OpenAIProvider{
		client: &client,
		model:  DefaultModel,
	}
}

// WithModel overrides the model name.
func (p *OpenAIProvider) WithModel(model string) *OpenAIProvider {
	p.model = model
	return p
}

// GenerateContent sends one prompt pair and returns the completion text.
// Transient API failures are retried with backoff before giving up.
func (p *OpenAIProvider) GenerateContent(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var content string
	err := withRetry(ctx, func() error {
		completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(systemPrompt),
				openai.UserMessage(userPrompt),
			},
			Model:       p.model,
			Temperature: openai.Float(defaultTemperature),
			MaxTokens:   openai.Int(defaultMaxTokens),
		})
		if err != nil {
			return err
		}
		if len(completion.Choices) == 0 {
			return &APICallError{Message: "no choices in completion"}
		}
		content = completion.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		if _, ok := err.(*APICallError); ok {
			return "", err
		}
		return "", &APICallError{Message: "chat completion", Cause: err}
	}
	if strings.TrimSpace(content) == "" {
		return "", &ValidationError{Message: "model returned empty content"}
	}
	return content, nil
}

// SystemPrompt returns the shared system prompt for content generation.
func SystemPrompt() string {
	return prompts.MustGet("generation.json", "content-system")
}
