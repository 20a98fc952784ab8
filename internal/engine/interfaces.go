package engine

import "context"

// GenerateOptions are per-call sampling parameters for a provider call.
type GenerateOptions struct {
	Temperature float64
	MaxTokens   int
}

// ModelClient abstracts one AI provider behind a uniform
// generate(prompt, temperature, max_tokens) -> text contract.
type ModelClient interface {
	// Name identifies the provider in strategy logs.
	Name() string
	// Generate sends the prompt and returns the raw response text.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// ContentExtractor abstracts web content extraction for ingest sources.
type ContentExtractor interface {
	Extract(ctx context.Context, url string) (*ExtractedContent, error)
}

// ExtractedContent holds the result of web content extraction.
type ExtractedContent struct {
	Title          string `json:"title"`
	Author         string `json:"author,omitempty"`
	NormalizedText string `json:"normalized_text"`
	WordCount      int    `json:"word_count"`
}
