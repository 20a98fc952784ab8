package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/haroon0x/CognixAi/internal/model"
)

// Planner synthesizes action plans and next-step suggestions from content
// items and user goals, trying AI providers before the deterministic
// rule-based planner.
type Planner struct {
	providers []ModelClient
	timeout   time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewPlanner creates a planner over the given provider priority list.
func NewPlanner(providers []ModelClient, timeout time.Duration, logger *slog.Logger) *Planner {
	return &Planner{
		providers: providers,
		timeout:   timeout,
		logger:    logger,
		now:       time.Now,
	}
}

// planPayload is the JSON shape providers must emit for plan generation.
type planPayload struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	Steps             []stepPayload `json:"steps"`
	Priority          string        `json:"priority"`
	EstimatedDuration string        `json:"estimatedDuration"`
	Dependencies      []string      `json:"dependencies"`
}

type stepPayload struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Completed     bool     `json:"completed"`
	DueDate       string   `json:"dueDate"`
	Resources     []string `json:"resources"`
	EstimatedTime string   `json:"estimated_time"`
}

// GeneratePlan produces one ActionPlan for the given content and goals.
// Provider output is validated against the plan schema; any malformed
// response falls through to the rule-based planner, which always
// succeeds.
func (p *Planner) GeneratePlan(ctx context.Context, items []model.ContentItem, goals []string) model.ActionPlan {
	opts := GenerateOptions{Temperature: 0.7, MaxTokens: 2000}
	strategies := providerStrategies(p.providers, opts,
		func() string { return buildPlanPrompt(items, goals) },
		parsePlanPayload)
	strategies = append(strategies, Strategy[planPayload]{
		Name: "heuristic",
		Run: func(context.Context) (planPayload, error) {
			return p.rulePlan(items, goals), nil
		},
	})

	payload, _ := runFirst(ctx, p.logger, "plan", p.timeout, strategies)
	plan := p.formatPlan(payload)

	p.logger.Info("generated action plan",
		"title", plan.Title,
		"steps", len(plan.Steps),
		"priority", plan.Priority)
	return plan
}

// SuggestNextSteps proposes up to five next actions given the content and
// the steps already completed.
func (p *Planner) SuggestNextSteps(ctx context.Context, items []model.ContentItem, completedSteps []string) []string {
	opts := GenerateOptions{Temperature: 0.7, MaxTokens: 500}
	strategies := providerStrategies(p.providers, opts,
		func() string { return buildSuggestPrompt(items, completedSteps) },
		parseSuggestions)
	strategies = append(strategies, Strategy[[]string]{
		Name: "heuristic",
		Run: func(context.Context) ([]string, error) {
			return ruleSuggestions(items, completedSteps), nil
		},
	})

	suggestions, _ := runFirst(ctx, p.logger, "suggest", p.timeout, strategies)
	return suggestions
}

// formatPlan assigns ids and due dates to a validated payload. Missing
// fields get stable defaults; an out-of-range priority becomes medium.
func (p *Planner) formatPlan(payload planPayload) model.ActionPlan {
	steps := make([]model.Step, 0, len(payload.Steps))
	for _, s := range payload.Steps {
		id := s.ID
		if id == "" {
			id = "step-" + uuid.New().String()
		}
		step := model.Step{
			ID:          id,
			Title:       s.Title,
			Description: s.Description,
			DueDate:     s.DueDate,
			Resources:   s.Resources,
		}
		if step.Title == "" {
			step.Title = "Untitled Step"
		}
		if step.Resources == nil {
			step.Resources = []string{}
		}
		if step.DueDate == "" && s.EstimatedTime != "" {
			step.DueDate = p.dueDateFrom(s.EstimatedTime)
		}
		steps = append(steps, step)
	}

	plan := model.ActionPlan{
		ID:                payload.ID,
		Title:             payload.Title,
		Steps:             steps,
		Priority:          payload.Priority,
		EstimatedDuration: payload.EstimatedDuration,
		Dependencies:      payload.Dependencies,
	}
	if plan.ID == "" {
		plan.ID = "plan-" + uuid.New().String()
	}
	if plan.Title == "" {
		plan.Title = "AI-Generated Action Plan"
	}
	if !model.ValidPriority(plan.Priority) {
		plan.Priority = model.PriorityMedium
	}
	if plan.EstimatedDuration == "" {
		plan.EstimatedDuration = "Unknown"
	}
	if plan.Dependencies == nil {
		plan.Dependencies = []string{}
	}
	return plan
}

// dueDateFrom converts a free-text step time estimate into a due date.
func (p *Planner) dueDateFrom(estimate string) string {
	days := 3
	switch {
	case strings.Contains(strings.ToLower(estimate), "day"):
		days = 1
	case strings.Contains(strings.ToLower(estimate), "week"):
		days = 7
	}
	return p.now().AddDate(0, 0, days).UTC().Format(time.RFC3339)
}

// rulePlan is the deterministic planner fallback: one step per recognized
// category present in the content, plus one step per user goal.
func (p *Planner) rulePlan(items []model.ContentItem, goals []string) planPayload {
	categories := uniqueCategories(items)
	var steps []stepPayload

	if categories["project-management"] {
		steps = append(steps, stepPayload{
			ID:          "step-" + uuid.New().String(),
			Title:       "Define Project Scope",
			Description: "Based on your documents, clearly define project boundaries and deliverables",
			Resources:   resourcesForCategory(items, "project-management"),
		})
	}
	if categories["meeting-notes"] {
		steps = append(steps, stepPayload{
			ID:          "step-" + uuid.New().String(),
			Title:       "Follow Up on Action Items",
			Description: "Review meeting notes and ensure all action items are tracked and assigned",
			DueDate:     p.now().AddDate(0, 0, 3).UTC().Format(time.RFC3339),
			Resources:   resourcesForCategory(items, "meeting-notes"),
		})
	}
	if categories["planning"] {
		steps = append(steps, stepPayload{
			ID:          "step-" + uuid.New().String(),
			Title:       "Create Detailed Timeline",
			Description: "Develop a comprehensive timeline with milestones based on your planning documents",
			Resources:   resourcesForCategory(items, "planning"),
		})
	}
	if categories["research"] {
		steps = append(steps, stepPayload{
			ID:          "step-" + uuid.New().String(),
			Title:       "Synthesize Research Findings",
			Description: "Compile and analyze research data to inform decision making",
			Resources:   resourcesForCategory(items, "research"),
		})
	}

	for _, goal := range goals {
		steps = append(steps, stepPayload{
			ID:          "goal-step-" + uuid.New().String(),
			Title:       "Work towards: " + goal,
			Description: "Take specific actions to achieve this goal based on your content",
			Resources:   resourcesForGoal(items, goal),
		})
	}

	return planPayload{
		ID:                "plan-" + uuid.New().String(),
		Title:             "Intelligent Action Plan",
		Steps:             steps,
		Priority:          planPriority(len(goals), len(items)),
		EstimatedDuration: estimateDuration(len(steps)),
		Dependencies:      identifyDependencies(steps),
	}
}

// ruleSuggestions is the deterministic suggestion fallback keyed on the
// categories present in the content.
func ruleSuggestions(items []model.ContentItem, completedSteps []string) []string {
	categories := uniqueCategories(items)
	completed := make(map[string]bool, len(completedSteps))
	for _, s := range completedSteps {
		completed[s] = true
	}

	suggestions := []string{}
	if categories["project-management"] && !completed["timeline-review"] {
		suggestions = append(suggestions, "Review and update project timelines based on recent progress")
	}
	if categories["meeting-notes"] && !completed["followup-complete"] {
		suggestions = append(suggestions, "Schedule follow-up meetings for unresolved action items")
	}
	if categories["research"] && !completed["analysis-complete"] {
		suggestions = append(suggestions, "Conduct deeper analysis on research findings")
	}
	if categories["development"] {
		suggestions = append(suggestions, "Set up development environment and coding standards")
	}
	if categories["marketing"] {
		suggestions = append(suggestions, "Create marketing campaign timeline and budget allocation")
	}
	return suggestions
}

// planPriority scores urgency from goal and content counts.
func planPriority(goalCount, contentCount int) string {
	score := goalCount*2 + contentCount
	switch {
	case score >= 8:
		return model.PriorityHigh
	case score >= 4:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

// estimateDuration derives a duration bucket from the step count,
// assuming two days per step with a one-week floor.
func estimateDuration(stepCount int) string {
	days := max(stepCount*2, 7)
	switch {
	case days <= 7:
		return "1 week"
	case days <= 14:
		return "2 weeks"
	case days <= 30:
		return "1 month"
	default:
		return fmt.Sprintf("%d months", days/30)
	}
}

// identifyDependencies infers prerequisite constraints from step titles.
func identifyDependencies(steps []stepPayload) []string {
	dependencies := []string{}
	hasTimeline := false
	hasFollowUp := false
	for _, s := range steps {
		if strings.Contains(s.Title, "Timeline") {
			hasTimeline = true
		}
		if strings.Contains(s.Title, "Follow Up") {
			hasFollowUp = true
		}
	}
	if hasTimeline {
		dependencies = append(dependencies, "Project scope definition must be completed first")
	}
	if hasFollowUp {
		dependencies = append(dependencies, "Meeting notes review must be completed")
	}
	return dependencies
}

func uniqueCategories(items []model.ContentItem) map[string]bool {
	categories := make(map[string]bool)
	for _, item := range items {
		for _, c := range item.Categories {
			categories[c] = true
		}
	}
	return categories
}

func resourcesForCategory(items []model.ContentItem, category string) []string {
	resources := []string{}
	for _, item := range items {
		for _, c := range item.Categories {
			if c == category {
				resources = append(resources, item.Title)
				break
			}
		}
	}
	return resources
}

func resourcesForGoal(items []model.ContentItem, goal string) []string {
	keywords := strings.Fields(strings.ToLower(goal))
	resources := []string{}
	for _, item := range items {
		lower := strings.ToLower(item.ExtractedText)
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				resources = append(resources, item.Title)
				break
			}
		}
	}
	return resources
}
