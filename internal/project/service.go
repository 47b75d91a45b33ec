package project

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// codePattern is the project code rule enforced by the client form, made
// authoritative here: exactly three upper-case alphanumerics.
var codePattern = regexp.MustCompile(`^[A-Z0-9]{3}$`)

// ErrNotOwner indicates the caller does not own the addressed project.
var ErrNotOwner = errors.New("project belongs to another user")

// ErrInvalidCode indicates the project code fails the format rule.
var ErrInvalidCode = errors.New("code must be 3 alphanumeric characters")

var (
	errDescription = errors.New("description is required")
	errCompany     = errors.New("company name is required")
)

// Service exposes project operations scoped to the authenticated owner.
type Service struct {
	repo Repository
}

// NewService builds a project service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures data required to create a project.
type CreateInput struct {
	OwnerID     string
	Code        string
	Description string
	CompanyName string
}

func (in CreateInput) validate() error {
	if !codePattern.MatchString(in.Code) {
		return ErrInvalidCode
	}
	if strings.TrimSpace(in.Description) == "" {
		return errDescription
	}
	if strings.TrimSpace(in.CompanyName) == "" {
		return errCompany
	}
	return nil
}

// Create provisions a project for the owner. Codes are unique per owner.
func (s *Service) Create(ctx context.Context, in CreateInput) (Project, error) {
	if err := in.validate(); err != nil {
		return Project{}, err
	}

	now := time.Now().UTC()
	p := Project{
		ID:          uuid.New().String(),
		OwnerID:     in.OwnerID,
		Code:        in.Code,
		Description: in.Description,
		CompanyName: in.CompanyName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Project{}, err
	}
	return p, nil
}

// Get returns the project if it belongs to the caller.
func (s *Service) Get(ctx context.Context, ownerID, id string) (Project, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Project{}, err
	}
	if p.OwnerID != ownerID {
		return Project{}, ErrNotOwner
	}
	return p, nil
}

// List returns every project owned by the caller.
func (s *Service) List(ctx context.Context, ownerID string) ([]Project, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// UpdateInput captures mutable project fields. Empty strings keep the stored
// value.
type UpdateInput struct {
	OwnerID     string
	ID          string
	Code        string
	Description string
	CompanyName string
}

// Update rewrites a project the caller owns.
func (s *Service) Update(ctx context.Context, in UpdateInput) (Project, error) {
	p, err := s.Get(ctx, in.OwnerID, in.ID)
	if err != nil {
		return Project{}, err
	}

	if in.Code != "" {
		if !codePattern.MatchString(in.Code) {
			return Project{}, ErrInvalidCode
		}
		p.Code = in.Code
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.CompanyName != "" {
		p.CompanyName = in.CompanyName
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return Project{}, err
	}
	return p, nil
}

// Delete soft-deletes a project the caller owns.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

// Owns reports whether the project exists and belongs to the user. Used by
// the dimensional-standard service to gate project-scoped writes.
func (s *Service) Owns(ctx context.Context, ownerID, id string) (bool, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return p.OwnerID == ownerID, nil
}
