package store

import (
	"errors"

	"github.com/haroon0x/CognixAi/internal/model"
)

// ErrNotFound is returned when a content item or plan id is unknown.
var ErrNotFound = errors.New("not found")

// ErrStepNotFound is returned when a plan exists but the step id is unknown.
var ErrStepNotFound = errors.New("step not found")

// ContentRepository is the content-store surface the API layer depends on.
type ContentRepository interface {
	Put(item model.ContentItem)
	Get(id string) (model.ContentItem, error)
	List() []model.ContentItem
	Len() int
}

// PlanRepository is the plan-store surface the API layer depends on.
type PlanRepository interface {
	Put(plan model.ActionPlan)
	Get(id string) (model.ActionPlan, error)
	List() []model.ActionPlan
	Len() int
	ToggleStep(planID, stepID string) (bool, error)
}
