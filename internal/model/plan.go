package model

// Plan priority constants
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Step is one actionable step within an ActionPlan. Completed is the only
// field that mutates after creation, via the step-toggle endpoint.
type Step struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Completed   bool     `json:"completed"`
	DueDate     string   `json:"dueDate,omitempty"`
	Resources   []string `json:"resources"`
}

// ActionPlan is a synthesized, steps-based plan generated from content
// items and user goals.
type ActionPlan struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Steps             []Step   `json:"steps"`
	Priority          string   `json:"priority"`
	EstimatedDuration string   `json:"estimatedDuration"`
	Dependencies      []string `json:"dependencies"`
}

// ValidPriority reports whether p is one of the three plan priorities.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
