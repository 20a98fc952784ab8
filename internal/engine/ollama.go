package engine

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaClient implements ModelClient against a local Ollama server. It
// is an optional third provider strategy for running without cloud keys.
type OllamaClient struct {
	llm llms.Model
}

// NewOllamaClient creates an Ollama-backed model client.
func NewOllamaClient(baseURL, model string) (*OllamaClient, error) {
	llm, err := ollama.New(
		ollama.WithModel(model),
		ollama.WithServerURL(baseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("initialize ollama: %w", err)
	}
	return &OllamaClient{llm: llm}, nil
}

// Name implements ModelClient.
func (c *OllamaClient) Name() string { return "ollama" }

// Generate sends a prompt to the Ollama server and returns the response text.
func (c *OllamaClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	result, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt,
		llms.WithTemperature(opts.Temperature),
		llms.WithMaxTokens(opts.MaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("ollama: %w", err)
	}
	if result == "" {
		return "", fmt.Errorf("empty response from ollama")
	}
	return result, nil
}
