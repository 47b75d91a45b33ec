package subscription

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service exposes plan and subscription operations.
type Service struct {
	repo Repository
}

// NewService builds a subscription service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Plans lists the available plan catalog.
func (s *Service) Plans(ctx context.Context) ([]Plan, error) {
	return s.repo.ListPlans(ctx)
}

// PlanByID fetches a single plan.
func (s *Service) PlanByID(ctx context.Context, id int) (Plan, error) {
	return s.repo.FindPlan(ctx, id)
}

// Subscribe puts the user on the given plan. The plan must exist.
func (s *Service) Subscribe(ctx context.Context, userID string, planID int) (Info, error) {
	plan, err := s.repo.FindPlan(ctx, planID)
	if err != nil {
		return Info{}, err
	}

	sub := Subscription{
		ID:        uuid.New().String(),
		UserID:    userID,
		PlanID:    plan.ID,
		Status:    StatusActive,
		StartedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return Info{}, err
	}
	return Info{Subscription: sub, Plan: plan}, nil
}

// InfoForUser returns the user's current subscription with its plan. Used to
// enrich the login response; it never gates authentication.
func (s *Service) InfoForUser(ctx context.Context, userID string) (Info, error) {
	sub, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return Info{}, err
	}
	plan, err := s.repo.FindPlan(ctx, sub.PlanID)
	if err != nil {
		return Info{}, err
	}
	return Info{Subscription: sub, Plan: plan}, nil
}
