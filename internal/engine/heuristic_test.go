package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCategories(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "meeting notes",
			text: "Meeting agenda for Monday with action items",
			want: []string{"meeting-notes"},
		},
		{
			name: "multiple categories in fixed order",
			text: "Project timeline discussed in the meeting, plus budget review",
			want: []string{"project-management", "meeting-notes", "finance"},
		},
		{
			name: "no match falls back to general",
			text: "the quick brown fox",
			want: []string{"general"},
		},
		{
			name: "case insensitive",
			text: "RESEARCH FINDINGS",
			want: []string{"research"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractCategories(tt.text))
		})
	}
}

func TestRelevanceScore_Range(t *testing.T) {
	texts := []string{
		"",
		"short",
		"objective goal plan action timeline deliverable requirement milestone task strategy implementation analysis solution",
	}
	for _, text := range texts {
		score := relevanceScore(text)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestRelevanceScore_IndicatorsRaiseScore(t *testing.T) {
	low := relevanceScore("hello world")
	high := relevanceScore("objective: plan the milestone timeline and deliverable tasks")
	assert.Greater(t, high, low)
}

func TestSimilarityScore(t *testing.T) {
	assert.Equal(t, 1.0, similarityScore("a b c", "c b a"), "identical word sets")
	assert.Equal(t, 0.0, similarityScore("", ""), "empty union")
	assert.Equal(t, 0.0, similarityScore("alpha beta", "gamma delta"), "disjoint")

	a, b := "project plan review", "plan review notes"
	assert.Equal(t, similarityScore(a, b), similarityScore(b, a), "symmetric")
	assert.InDelta(t, 0.5, similarityScore(a, b), 1e-9)
}

func TestCommonTopics(t *testing.T) {
	got := commonTopics(
		[]string{"planning", "research", "finance"},
		[]string{"finance", "planning", "marketing"},
	)
	assert.Equal(t, []string{"planning", "finance"}, got)

	assert.Empty(t, commonTopics([]string{"planning"}, []string{"finance"}))
}
