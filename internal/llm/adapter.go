// Package llm calls an OpenAI-compatible chat model to analyze queries,
// summarize cases and suggest searches. Every call degrades to a fixed
// fallback value instead of returning an error.
package llm

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

var (
	// ErrEmptyResponse is returned when the model produced no content
	ErrEmptyResponse = errors.New("empty response from model")
	// ErrNoAPIKey is returned when no API key is configured
	ErrNoAPIKey = errors.New("LLM API key not set")
)

// ChatAPI is the single call the client needs from a chat model.
type ChatAPI interface {
	CompleteJSON(ctx context.Context, model, system, prompt string) (string, error)
}

// OpenAIAdapter implements ChatAPI with go-openai. BaseURL may point at any
// OpenAI-compatible endpoint.
type OpenAIAdapter struct {
	client *openai.Client
}

func NewOpenAIAdapter(apiKey, baseURL string) *OpenAIAdapter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	return &OpenAIAdapter{client: openai.NewClientWithConfig(cfg)}
}

// CompleteJSON requests a JSON-object response and returns the raw content.
func (a *OpenAIAdapter) CompleteJSON(ctx context.Context, model, system, prompt string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}
