// Package config provides centralized configuration for the CognixAi
// server. All values come from environment variables with sensible
// defaults; a missing provider API key disables that provider strategy
// without otherwise affecting behavior.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all server configuration values.
type Config struct {
	// Port is the HTTP server listen port.
	Port string

	// GoogleAPIKey is the API key for the Gemini service (primary provider).
	GoogleAPIKey string

	// GeminiModel is the model identifier for Gemini completions.
	GeminiModel string

	// OpenAIKey is the API key for the OpenAI service (secondary provider).
	OpenAIKey string

	// OpenAIModel is the model identifier for OpenAI completions.
	OpenAIModel string

	// OpenAIBaseURL overrides the OpenAI endpoint for compatible services.
	OpenAIBaseURL string

	// OllamaEnabled turns on the local Ollama provider strategy.
	OllamaEnabled bool

	// OllamaURL is the base URL for the local Ollama server.
	OllamaURL string

	// OllamaModel is the model identifier for Ollama completions.
	OllamaModel string

	// ProviderTimeout bounds each provider strategy attempt.
	ProviderTimeout time.Duration

	// HTTPTimeout is the timeout for outgoing extraction requests.
	HTTPTimeout time.Duration

	// MaxTextLength is the maximum number of runes kept from web extraction.
	MaxTextLength int

	// FrontendURL is the allowed CORS origin. Defaults to "*".
	FrontendURL string
}

// Load reads configuration from environment variables, applying defaults.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return Config{
		Port:            v.GetString("PORT"),
		GoogleAPIKey:    v.GetString("GOOGLE_API_KEY"),
		GeminiModel:     v.GetString("GEMINI_MODEL"),
		OpenAIKey:       v.GetString("OPENAI_API_KEY"),
		OpenAIModel:     v.GetString("OPENAI_MODEL"),
		OpenAIBaseURL:   v.GetString("OPENAI_BASE_URL"),
		OllamaEnabled:   v.GetBool("OLLAMA_ENABLED"),
		OllamaURL:       v.GetString("OLLAMA_URL"),
		OllamaModel:     v.GetString("OLLAMA_MODEL"),
		ProviderTimeout: v.GetDuration("PROVIDER_TIMEOUT"),
		HTTPTimeout:     v.GetDuration("HTTP_TIMEOUT"),
		MaxTextLength:   v.GetInt("MAX_TEXT_LENGTH"),
		FrontendURL:     v.GetString("FRONTEND_URL"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8000")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("OPENAI_MODEL", "gpt-3.5-turbo")
	v.SetDefault("OLLAMA_ENABLED", false)
	v.SetDefault("OLLAMA_URL", "http://localhost:11434")
	v.SetDefault("OLLAMA_MODEL", "llama3")
	v.SetDefault("PROVIDER_TIMEOUT", 30*time.Second)
	v.SetDefault("HTTP_TIMEOUT", 30*time.Second)
	v.SetDefault("MAX_TEXT_LENGTH", 15000)
	v.SetDefault("FRONTEND_URL", "*")
}

// HasProviders reports whether at least one AI provider is configured.
func (c Config) HasProviders() bool {
	return c.GoogleAPIKey != "" || c.OpenAIKey != "" || c.OllamaEnabled
}
