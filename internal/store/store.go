// Package store provides the in-memory content and plan stores. Both are
// created at service start, injected into request handlers, and lost on
// restart; there is no durability layer.
package store

import (
	"sync"

	"github.com/haroon0x/CognixAi/internal/model"
)

// ContentStore holds processed content items keyed by id, preserving
// insertion order for listings.
type ContentStore struct {
	mu    sync.RWMutex
	items map[string]model.ContentItem
	order []string
}

// NewContentStore creates an empty content store.
func NewContentStore() *ContentStore {
	return &ContentStore{items: make(map[string]model.ContentItem)}
}

// Put inserts or replaces an item. Ids are freshly generated per request,
// so replacement only happens when a caller re-stores an enriched item.
func (s *ContentStore) Put(item model.ContentItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[item.ID]; !exists {
		s.order = append(s.order, item.ID)
	}
	s.items[item.ID] = item
}

// Get returns the item with the given id or ErrNotFound.
func (s *ContentStore) Get(id string) (model.ContentItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return model.ContentItem{}, ErrNotFound
	}
	return item, nil
}

// List returns all items in insertion order.
func (s *ContentStore) List() []model.ContentItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ContentItem, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

// Len returns the number of stored items.
func (s *ContentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// PlanStore holds generated action plans keyed by id.
type PlanStore struct {
	mu    sync.RWMutex
	plans map[string]model.ActionPlan
	order []string
}

// NewPlanStore creates an empty plan store.
func NewPlanStore() *PlanStore {
	return &PlanStore{plans: make(map[string]model.ActionPlan)}
}

// Put inserts or replaces a plan.
func (s *PlanStore) Put(plan model.ActionPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.plans[plan.ID]; !exists {
		s.order = append(s.order, plan.ID)
	}
	s.plans[plan.ID] = plan
}

// Get returns the plan with the given id or ErrNotFound.
func (s *PlanStore) Get(id string) (model.ActionPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plan, ok := s.plans[id]
	if !ok {
		return model.ActionPlan{}, ErrNotFound
	}
	return plan, nil
}

// List returns all plans in insertion order.
func (s *PlanStore) List() []model.ActionPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ActionPlan, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.plans[id])
	}
	return out
}

// Len returns the number of stored plans.
func (s *PlanStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.plans)
}

// ToggleStep flips the completed flag of one step and returns the new
// value. Concurrent toggles of the same step serialize under the write
// lock; the last writer wins.
func (s *PlanStore) ToggleStep(planID, stepID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan, ok := s.plans[planID]
	if !ok {
		return false, ErrNotFound
	}
	for i := range plan.Steps {
		if plan.Steps[i].ID == stepID {
			plan.Steps[i].Completed = !plan.Steps[i].Completed
			s.plans[planID] = plan
			return plan.Steps[i].Completed, nil
		}
	}
	return false, ErrStepNotFound
}
