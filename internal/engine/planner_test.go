package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haroon0x/CognixAi/internal/model"
)

func newTestPlanner(providers ...ModelClient) *Planner {
	p := NewPlanner(providers, time.Second, testLogger)
	p.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	return p
}

func itemWithCategories(title string, categories ...string) model.ContentItem {
	item := model.NewContentItem(model.TypeText, title, "", "text for "+title, nil)
	item.Categories = categories
	return item
}

func TestGeneratePlan_FromProviderJSON(t *testing.T) {
	response := "```json\n" + `{
		"title": "Launch Prep",
		"steps": [
			{"title": "Draft announcement", "description": "Write the launch post", "estimated_time": "1 day"},
			{"title": "Review timeline", "dueDate": "2025-06-10T00:00:00Z"}
		],
		"priority": "high",
		"estimatedDuration": "2 weeks",
		"dependencies": ["Announcement must be approved"]
	}` + "\n```"

	p := newTestPlanner(&fakeModel{name: "fake", response: response})
	plan := p.GeneratePlan(context.Background(), nil, []string{"launch"})

	assert.Equal(t, "Launch Prep", plan.Title)
	assert.Equal(t, model.PriorityHigh, plan.Priority)
	assert.Equal(t, "2 weeks", plan.EstimatedDuration)
	assert.Equal(t, []string{"Announcement must be approved"}, plan.Dependencies)
	assert.Contains(t, plan.ID, "plan-")

	require.Len(t, plan.Steps, 2)
	assert.Contains(t, plan.Steps[0].ID, "step-")
	assert.Equal(t, "2025-06-02T00:00:00Z", plan.Steps[0].DueDate, "estimated_time of a day becomes tomorrow")
	assert.Equal(t, "2025-06-10T00:00:00Z", plan.Steps[1].DueDate, "explicit dueDate is kept")
	assert.NotNil(t, plan.Steps[0].Resources)
}

func TestGeneratePlan_MalformedJSONFallsBack(t *testing.T) {
	p := newTestPlanner(&fakeModel{name: "fake", response: "sure, here is your plan:"})
	items := []model.ContentItem{itemWithCategories("Notes", "meeting-notes")}

	plan := p.GeneratePlan(context.Background(), items, nil)
	assert.Equal(t, "Intelligent Action Plan", plan.Title)
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, "Follow Up on Action Items", plan.Steps[0].Title)
}

func TestGeneratePlan_ProviderErrorFallsBack(t *testing.T) {
	p := newTestPlanner(&fakeModel{name: "fake", err: errors.New("down")})
	plan := p.GeneratePlan(context.Background(), nil, []string{"ship it"})

	require.Len(t, plan.Steps, 1)
	assert.Equal(t, "Work towards: ship it", plan.Steps[0].Title)
	assert.Contains(t, plan.Steps[0].ID, "goal-step-")
}

func TestRulePlan_CategorySteps(t *testing.T) {
	p := newTestPlanner()
	items := []model.ContentItem{
		itemWithCategories("Kickoff", "project-management", "planning"),
		itemWithCategories("Study", "research"),
	}

	plan := p.GeneratePlan(context.Background(), items, nil)

	titles := make([]string, 0, len(plan.Steps))
	for _, s := range plan.Steps {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{
		"Define Project Scope",
		"Create Detailed Timeline",
		"Synthesize Research Findings",
	}, titles)

	// Timeline step implies a scope dependency.
	assert.Contains(t, plan.Dependencies, "Project scope definition must be completed first")
}

func TestRulePlan_GoalResources(t *testing.T) {
	p := newTestPlanner()
	item := model.NewContentItem(model.TypeText, "Budget Doc", "", "quarterly budget forecast", nil)
	item.Categories = []string{"finance"}

	plan := p.GeneratePlan(context.Background(), []model.ContentItem{item}, []string{"finalize budget"})
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, []string{"Budget Doc"}, plan.Steps[0].Resources)
}

func TestPlanPriority(t *testing.T) {
	tests := []struct {
		goals, items int
		want         string
	}{
		{4, 0, model.PriorityHigh},
		{2, 0, model.PriorityMedium},
		{1, 0, model.PriorityLow},
		{0, 8, model.PriorityHigh},
		{0, 4, model.PriorityMedium},
		{0, 3, model.PriorityLow},
		{3, 2, model.PriorityHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, planPriority(tt.goals, tt.items), "goals=%d items=%d", tt.goals, tt.items)
	}
}

func TestEstimateDuration(t *testing.T) {
	tests := []struct {
		steps int
		want  string
	}{
		{0, "1 week"},
		{3, "1 week"},
		{5, "2 weeks"},
		{10, "1 month"},
		{30, "2 months"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, estimateDuration(tt.steps), "steps=%d", tt.steps)
	}
}

func TestSuggestNextSteps_Rules(t *testing.T) {
	p := newTestPlanner()
	items := []model.ContentItem{
		itemWithCategories("Plan", "project-management"),
		itemWithCategories("Notes", "meeting-notes"),
		itemWithCategories("Study", "research"),
	}

	got := p.SuggestNextSteps(context.Background(), items, nil)
	assert.Equal(t, []string{
		"Review and update project timelines based on recent progress",
		"Schedule follow-up meetings for unresolved action items",
		"Conduct deeper analysis on research findings",
	}, got)

	got = p.SuggestNextSteps(context.Background(), items, []string{"timeline-review", "analysis-complete"})
	assert.Equal(t, []string{
		"Schedule follow-up meetings for unresolved action items",
	}, got)
}

func TestSuggestNextSteps_ProviderCapsAtFive(t *testing.T) {
	response := "one\ntwo\nthree\nfour\nfive\nsix"
	p := newTestPlanner(&fakeModel{name: "fake", response: response})

	got := p.SuggestNextSteps(context.Background(), nil, nil)
	assert.Equal(t, []string{"one", "two", "three", "four", "five"}, got)
}
