package subscription

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	plans map[int]Plan
	subs  map[string]Subscription // keyed by user id
}

// NewMemoryRepository builds an in-memory subscription store seeded with the
// standard plan catalog. Useful for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		plans: map[int]Plan{
			1: {ID: 1, Name: "Free", Description: "Single project, community support", PriceCents: 0},
			2: {ID: 2, Name: "Professional", Description: "Unlimited projects, priority support", PriceCents: 4900},
			3: {ID: 3, Name: "Enterprise", Description: "Unlimited projects, SSO, dedicated support", PriceCents: 19900},
		},
		subs: make(map[string]Subscription),
	}
}

func (r *memoryRepository) FindPlan(_ context.Context, id int) (Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plan, ok := r.plans[id]
	if !ok {
		return Plan{}, ErrPlanNotFound
	}
	return plan, nil
}

func (r *memoryRepository) ListPlans(_ context.Context) ([]Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plans := make([]Plan, 0, len(r.plans))
	for _, p := range r.plans {
		plans = append(plans, p)
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].PriceCents < plans[j].PriceCents })
	return plans, nil
}

func (r *memoryRepository) Create(_ context.Context, sub Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs[sub.UserID] = sub
	return nil
}

func (r *memoryRepository) FindByUserID(_ context.Context, userID string) (Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.subs[userID]
	if !ok {
		return Subscription{}, ErrNotFound
	}
	return sub, nil
}
