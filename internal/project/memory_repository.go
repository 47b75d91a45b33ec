package project

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu       sync.RWMutex
	projects map[string]Project
}

// NewMemoryRepository builds an in-memory project store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{projects: make(map[string]Project)}
}

func (r *memoryRepository) Create(_ context.Context, p Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.projects {
		if existing.OwnerID == p.OwnerID && existing.Code == p.Code && !existing.IsDeleted {
			return ErrCodeTaken
		}
	}
	r.projects[p.ID] = p
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.projects[id]
	if !ok || p.IsDeleted {
		return Project{}, ErrNotFound
	}
	return p, nil
}

func (r *memoryRepository) ListByOwner(_ context.Context, ownerID string) ([]Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var projects []Project
	for _, p := range r.projects {
		if p.OwnerID == ownerID && !p.IsDeleted {
			projects = append(projects, p)
		}
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].CreatedAt.After(projects[j].CreatedAt) })
	return projects, nil
}

func (r *memoryRepository) Update(_ context.Context, updated Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[updated.ID]
	if !ok || p.IsDeleted {
		return ErrNotFound
	}
	r.projects[updated.ID] = updated
	return nil
}

func (r *memoryRepository) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok || p.IsDeleted {
		return ErrNotFound
	}
	p.IsDeleted = true
	r.projects[id] = p
	return nil
}
