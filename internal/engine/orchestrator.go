package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Strategy is one candidate method for producing a capability's result:
// an AI provider call or the rule-based heuristic.
type Strategy[T any] struct {
	Name string
	Run  func(ctx context.Context) (T, error)
}

// runFirst invokes strategies in order and returns the first success.
// Each attempt runs under its own timeout so a hanging provider cannot
// stall the chain; a failure is logged and the next strategy is tried.
// Callers place the rule-based heuristic last, so for the orchestrated
// capabilities the returned error is unreachable.
func runFirst[T any](ctx context.Context, logger *slog.Logger, capability string, timeout time.Duration, strategies []Strategy[T]) (T, error) {
	attempt := func(s Strategy[T]) (T, error) {
		if timeout <= 0 {
			return s.Run(ctx)
		}
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return s.Run(attemptCtx)
	}

	var zero T
	var lastErr error
	for _, s := range strategies {
		v, err := attempt(s)
		if err == nil {
			return v, nil
		}
		lastErr = err
		logger.Warn("strategy failed",
			"capability", capability,
			"strategy", s.Name,
			"error", err)
	}
	return zero, fmt.Errorf("%s: all strategies failed: %w", capability, lastErr)
}

// providerStrategies builds one strategy per provider, applying parse to
// the raw response. A parse failure fails the strategy.
func providerStrategies[T any](providers []ModelClient, opts GenerateOptions, prompt func() string, parse func(string) (T, error)) []Strategy[T] {
	out := make([]Strategy[T], 0, len(providers))
	for _, p := range providers {
		out = append(out, Strategy[T]{
			Name: p.Name(),
			Run: func(ctx context.Context) (T, error) {
				var zero T
				raw, err := p.Generate(ctx, prompt(), opts)
				if err != nil {
					return zero, err
				}
				return parse(raw)
			},
		})
	}
	return out
}

// parseScore coerces provider text to a float in [0, 1]. Values outside
// the range are not clamped; they fail the strategy.
func parseScore(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	score, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric score %q: %w", s, err)
	}
	if score < 0.0 || score > 1.0 {
		return 0, fmt.Errorf("score %v outside [0.0, 1.0]", score)
	}
	return score, nil
}

// parseCategories splits a comma-separated label list, trimming entries
// and dropping empties. An empty result fails the strategy.
func parseCategories(raw string) ([]string, error) {
	parts := strings.Split(raw, ",")
	categories := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			categories = append(categories, p)
		}
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("empty category list in %q", raw)
	}
	return categories, nil
}

// parseSuggestions splits free-form newline-separated text into at most
// five non-empty suggestions.
func parseSuggestions(raw string) ([]string, error) {
	lines := strings.Split(raw, "\n")
	suggestions := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		suggestions = append(suggestions, line)
		if len(suggestions) == 5 {
			break
		}
	}
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("no suggestions in response")
	}
	return suggestions, nil
}

// stripCodeFence removes a surrounding Markdown code fence, which many
// models emit around JSON despite instructions not to.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// parsePlanPayload validates provider text as plan-schema JSON.
func parsePlanPayload(raw string) (planPayload, error) {
	var payload planPayload
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &payload); err != nil {
		return planPayload{}, fmt.Errorf("invalid plan JSON: %w", err)
	}
	return payload, nil
}
