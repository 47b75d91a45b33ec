package dimstd

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu         sync.RWMutex
	components map[int]string
	standards  map[string]DimensionalStandard
	dimStds    map[string]DimStd
	schedules  []DefaultSchedule
}

// NewMemoryRepository builds an in-memory dimstd store seeded with the
// standard component catalog. Useful for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		components: map[int]string{
			1: "Pipe", 2: "Elbow", 3: "Tee", 4: "Flange",
			5: "Valve", 6: "Reducer", 7: "Coupling", 8: "Gasket",
		},
		standards: make(map[string]DimensionalStandard),
		dimStds:   make(map[string]DimStd),
	}
}

func (r *memoryRepository) ComponentExists(_ context.Context, id int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.components[id]
	return ok, nil
}

func (r *memoryRepository) CreateStandard(_ context.Context, std DimensionalStandard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.standards[std.ID] = std
	return nil
}

func (r *memoryRepository) UpdateStandard(_ context.Context, id, standard string) (DimensionalStandard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	std, ok := r.standards[id]
	if !ok {
		return DimensionalStandard{}, ErrStandardNotFound
	}
	std.Standard = standard
	r.standards[id] = std
	return std, nil
}

func (r *memoryRepository) ListStandards(_ context.Context) ([]DimensionalStandard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	standards := make([]DimensionalStandard, 0, len(r.standards))
	for _, std := range r.standards {
		standards = append(standards, std)
	}
	sort.Slice(standards, func(i, j int) bool {
		if standards[i].ComponentID != standards[j].ComponentID {
			return standards[i].ComponentID < standards[j].ComponentID
		}
		return standards[i].Standard < standards[j].Standard
	})
	return standards, nil
}

func (r *memoryRepository) ListStandardsByComponent(_ context.Context, componentID int) ([]DimensionalStandard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var standards []DimensionalStandard
	for _, std := range r.standards {
		if std.ComponentID == componentID {
			standards = append(standards, std)
		}
	}
	sort.Slice(standards, func(i, j int) bool { return standards[i].Standard < standards[j].Standard })
	return standards, nil
}

func (r *memoryRepository) DeleteStandard(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.standards[id]; !ok {
		return ErrStandardNotFound
	}
	delete(r.standards, id)
	return nil
}

func (r *memoryRepository) FindDimStds(_ context.Context, gType, projectID string) ([]DimStd, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []DimStd
	for _, d := range r.dimStds {
		if d.GType != gType {
			continue
		}
		if d.ProjectID == "" || d.ProjectID == projectID {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ProjectID != result[j].ProjectID {
			return result[i].ProjectID > result[j].ProjectID
		}
		return result[i].DimStd < result[j].DimStd
	})
	return result, nil
}

func (r *memoryRepository) UpsertDimStds(_ context.Context, items []DimStd) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		replaced := false
		for id, existing := range r.dimStds {
			if existing.ProjectID == item.ProjectID && existing.GType == item.GType && existing.DimStd == item.DimStd {
				existing.UpdatedAt = item.UpdatedAt
				r.dimStds[id] = existing
				replaced = true
				break
			}
		}
		if !replaced {
			r.dimStds[item.ID] = item
		}
	}
	return nil
}

func (r *memoryRepository) ListSchedules(_ context.Context) ([]DefaultSchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]DefaultSchedule(nil), r.schedules...), nil
}
