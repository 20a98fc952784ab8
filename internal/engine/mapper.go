package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/haroon0x/CognixAi/internal/model"
)

// similarityThreshold is the minimum pairwise similarity reported as a
// relationship.
const similarityThreshold = 0.3

// Mapper enriches content items with categories, relevance scores, and
// pairwise relationships. Every capability tries the configured providers
// in priority order and terminates in a rule-based heuristic, so no
// method here can fail.
type Mapper struct {
	providers []ModelClient
	timeout   time.Duration
	logger    *slog.Logger
}

// NewMapper creates a mapper over the given provider priority list.
func NewMapper(providers []ModelClient, timeout time.Duration, logger *slog.Logger) *Mapper {
	return &Mapper{providers: providers, timeout: timeout, logger: logger}
}

// Categorize returns category labels for the given content.
func (m *Mapper) Categorize(ctx context.Context, title, text string) []string {
	opts := GenerateOptions{Temperature: 0.3, MaxTokens: 100}
	strategies := providerStrategies(m.providers, opts,
		func() string { return buildCategorizePrompt(title, text) },
		parseCategories)
	strategies = append(strategies, Strategy[[]string]{
		Name: "heuristic",
		Run: func(context.Context) ([]string, error) {
			return extractCategories(text), nil
		},
	})

	categories, _ := runFirst(ctx, m.logger, "categorize", m.timeout, strategies)
	return categories
}

// Relevance rates the content's quality/relevance in [0, 1].
func (m *Mapper) Relevance(ctx context.Context, text string) float64 {
	opts := GenerateOptions{Temperature: 0.1, MaxTokens: 10}
	strategies := providerStrategies(m.providers, opts,
		func() string { return buildRelevancePrompt(text) },
		parseScore)
	strategies = append(strategies, Strategy[float64]{
		Name: "heuristic",
		Run: func(context.Context) (float64, error) {
			return relevanceScore(text), nil
		},
	})

	score, _ := runFirst(ctx, m.logger, "relevance", m.timeout, strategies)
	return score
}

// Similarity rates how alike two texts are in [0, 1].
func (m *Mapper) Similarity(ctx context.Context, text1, text2 string) float64 {
	opts := GenerateOptions{Temperature: 0.1, MaxTokens: 10}
	strategies := providerStrategies(m.providers, opts,
		func() string { return buildSimilarityPrompt(text1, text2) },
		parseScore)
	strategies = append(strategies, Strategy[float64]{
		Name: "heuristic",
		Run: func(context.Context) (float64, error) {
			return similarityScore(text1, text2), nil
		},
	})

	score, _ := runFirst(ctx, m.logger, "similarity", m.timeout, strategies)
	return score
}

// Enrich populates categories and relevance score on a freshly collected
// item. It is called exactly once per item, before storage.
func (m *Mapper) Enrich(ctx context.Context, item model.ContentItem) model.ContentItem {
	item.Categories = m.Categorize(ctx, item.Title, item.ExtractedText)
	score := m.Relevance(ctx, item.ExtractedText)
	item.RelevanceScore = &score

	m.logger.Info("categorized content",
		"title", item.Title,
		"categories", item.Categories,
		"relevance", score)
	return item
}

// EnrichAll enriches every item in order.
func (m *Mapper) EnrichAll(ctx context.Context, items []model.ContentItem) []model.ContentItem {
	out := make([]model.ContentItem, 0, len(items))
	for _, item := range items {
		out = append(out, m.Enrich(ctx, item))
	}
	return out
}

// FindRelationships scores every item pair and reports those above the
// similarity threshold, together with their common categories.
func (m *Mapper) FindRelationships(ctx context.Context, items []model.ContentItem) []model.Relationship {
	relationships := []model.Relationship{}
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			similarity := m.Similarity(ctx, items[i].ExtractedText, items[j].ExtractedText)
			if similarity <= similarityThreshold {
				continue
			}
			relationships = append(relationships, model.Relationship{
				Item1:        items[i].ID,
				Item2:        items[j].ID,
				Similarity:   similarity,
				CommonTopics: commonTopics(items[i].Categories, items[j].Categories),
			})
		}
	}

	m.logger.Info("found relationships", "count", len(relationships), "items", len(items))
	return relationships
}
