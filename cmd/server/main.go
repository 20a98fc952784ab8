package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/haroon0x/CognixAi/internal/api"
	"github.com/haroon0x/CognixAi/internal/config"
	"github.com/haroon0x/CognixAi/internal/engine"
	"github.com/haroon0x/CognixAi/internal/store"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	providers := buildProviders(cfg, logger)
	if len(providers) == 0 {
		logger.Info("no AI providers configured, using rule-based processing only")
	}

	contentStore := store.NewContentStore()
	planStore := store.NewPlanStore()

	extractor := engine.NewHTTPExtractor(
		engine.WithExtractorTimeout(cfg.HTTPTimeout),
		engine.WithMaxTextLength(cfg.MaxTextLength),
	)

	collector := engine.NewCollector(providers, extractor, cfg.ProviderTimeout, logger)
	mapper := engine.NewMapper(providers, cfg.ProviderTimeout, logger)
	planner := engine.NewPlanner(providers, cfg.ProviderTimeout, logger)

	srv := api.New(api.Options{
		Content:    contentStore,
		Plans:      planStore,
		Collector:  collector,
		Mapper:     mapper,
		Planner:    planner,
		Logger:     logger,
		CORSOrigin: cfg.FrontendURL,
	})

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Handler(),
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")
		httpServer.Shutdown(context.Background())
	}()

	fmt.Printf("CognixAi server listening on http://localhost:%s\n", cfg.Port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// buildProviders assembles the ordered provider chain: Gemini first,
// then OpenAI, then a local Ollama instance when enabled.
func buildProviders(cfg config.Config, logger *slog.Logger) []engine.ModelClient {
	var providers []engine.ModelClient

	if cfg.GoogleAPIKey != "" {
		logger.Info("gemini provider enabled", "model", cfg.GeminiModel)
		providers = append(providers, engine.NewGeminiClient(cfg.GoogleAPIKey,
			engine.WithGeminiModel(cfg.GeminiModel)))
	}

	if cfg.OpenAIKey != "" {
		opts := []engine.OpenAIOption{engine.WithModel(cfg.OpenAIModel)}
		if cfg.OpenAIBaseURL != "" {
			opts = append(opts, engine.WithBaseURL(cfg.OpenAIBaseURL))
		}
		logger.Info("openai provider enabled", "model", cfg.OpenAIModel)
		providers = append(providers, engine.NewOpenAIClient(cfg.OpenAIKey, opts...))
	}

	if cfg.OllamaEnabled {
		client, err := engine.NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel)
		if err != nil {
			logger.Warn("ollama provider unavailable", "error", err)
		} else {
			logger.Info("ollama provider enabled", "model", cfg.OllamaModel)
			providers = append(providers, client)
		}
	}

	return providers
}
