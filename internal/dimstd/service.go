package dimstd

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidProjectAccess indicates a dim-std write addressed a project the
// caller does not own.
var ErrInvalidProjectAccess = errors.New("invalid project access")

var errEmptyField = errors.New("g_type and dim_std are required")

// ProjectDirectory answers ownership questions about projects. Implemented by
// the project service.
type ProjectDirectory interface {
	Owns(ctx context.Context, ownerID, projectID string) (bool, error)
}

// Service exposes dimensional-standard operations.
type Service struct {
	repo     Repository
	projects ProjectDirectory
}

// NewService builds a dimstd service instance.
func NewService(repo Repository, projects ProjectDirectory) *Service {
	return &Service{repo: repo, projects: projects}
}

// CreateStandard registers a dimensional standard for an existing component.
func (s *Service) CreateStandard(ctx context.Context, componentID int, standard string) (DimensionalStandard, error) {
	if strings.TrimSpace(standard) == "" {
		return DimensionalStandard{}, errEmptyField
	}
	exists, err := s.repo.ComponentExists(ctx, componentID)
	if err != nil {
		return DimensionalStandard{}, err
	}
	if !exists {
		return DimensionalStandard{}, ErrComponentNotFound
	}

	now := time.Now().UTC()
	std := DimensionalStandard{
		ID:          uuid.New().String(),
		ComponentID: componentID,
		Standard:    standard,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateStandard(ctx, std); err != nil {
		return DimensionalStandard{}, err
	}
	return std, nil
}

// UpdateStandard rewrites the standard text.
func (s *Service) UpdateStandard(ctx context.Context, id, standard string) (DimensionalStandard, error) {
	if strings.TrimSpace(standard) == "" {
		return DimensionalStandard{}, errEmptyField
	}
	return s.repo.UpdateStandard(ctx, id, standard)
}

// AllStandards lists every dimensional standard.
func (s *Service) AllStandards(ctx context.Context) ([]DimensionalStandard, error) {
	return s.repo.ListStandards(ctx)
}

// StandardsByComponent lists the standards for a component; the component
// must exist.
func (s *Service) StandardsByComponent(ctx context.Context, componentID int) ([]DimensionalStandard, error) {
	exists, err := s.repo.ComponentExists(ctx, componentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrComponentNotFound
	}
	return s.repo.ListStandardsByComponent(ctx, componentID)
}

// DeleteStandard removes a dimensional standard.
func (s *Service) DeleteStandard(ctx context.Context, id string) error {
	return s.repo.DeleteStandard(ctx, id)
}

// DimStdsByGType returns the dim-std values for a g_type visible to the
// project: its own rows plus the application defaults.
func (s *Service) DimStdsByGType(ctx context.Context, gType, projectID string) ([]DimStd, error) {
	if strings.TrimSpace(gType) == "" {
		return nil, errEmptyField
	}
	return s.repo.FindDimStds(ctx, gType, projectID)
}

// DimStdInput is one row of a batch add-or-update request.
type DimStdInput struct {
	ProjectID string `json:"project_id"`
	GType     string `json:"g_type"`
	DimStd    string `json:"dim_std"`
}

// AddOrUpdateDimStds upserts the given rows. Every project-scoped row must
// address a project owned by the caller; the whole batch is rejected
// otherwise, before anything is written.
func (s *Service) AddOrUpdateDimStds(ctx context.Context, ownerID string, inputs []DimStdInput) error {
	if len(inputs) == 0 {
		return errEmptyField
	}

	now := time.Now().UTC()
	items := make([]DimStd, 0, len(inputs))
	checked := make(map[string]bool)
	for _, in := range inputs {
		if strings.TrimSpace(in.GType) == "" || strings.TrimSpace(in.DimStd) == "" {
			return errEmptyField
		}
		if in.ProjectID != "" && !checked[in.ProjectID] {
			owns, err := s.projects.Owns(ctx, ownerID, in.ProjectID)
			if err != nil {
				return err
			}
			if !owns {
				return ErrInvalidProjectAccess
			}
			checked[in.ProjectID] = true
		}
		items = append(items, DimStd{
			ID:        uuid.New().String(),
			ProjectID: in.ProjectID,
			GType:     in.GType,
			DimStd:    in.DimStd,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return s.repo.UpsertDimStds(ctx, items)
}

// Schedules returns the default schedule catalog.
func (s *Service) Schedules(ctx context.Context) ([]DefaultSchedule, error) {
	return s.repo.ListSchedules(ctx)
}
