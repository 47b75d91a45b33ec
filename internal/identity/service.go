package identity

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidationError reports a field-level problem in a request before any
// credential work happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Service manages the account lifecycle.
type Service struct {
	repo       Repository
	bcryptCost int
}

// NewService creates a new identity service. A non-positive cost falls back
// to the bcrypt default.
func NewService(repo Repository, bcryptCost int) *Service {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, bcryptCost: bcryptCost}
}

// RegisterInput captures data required to create an account.
type RegisterInput struct {
	Name        string
	CompanyName string
	Email       string
	Industry    string
	Country     string
	PhoneNumber string
	Password    string
}

func (in RegisterInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if !emailPattern.MatchString(in.Email) {
		return &ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	if len(in.Password) < 8 {
		return &ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}
	return nil
}

// Register validates the input, hashes the password and stores the user.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	if err := in.validate(); err != nil {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		CompanyName:  in.CompanyName,
		Email:        strings.ToLower(in.Email),
		Industry:     in.Industry,
		Country:      in.Country,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// GetByEmail returns the non-deleted user holding the email.
func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	if email == "" {
		return User{}, &ValidationError{Field: "email", Reason: "is required"}
	}
	return s.repo.FindByEmail(ctx, email)
}

// UpdateInput captures the mutable account fields. Empty strings leave the
// stored value unchanged; a non-empty password is re-hashed.
type UpdateInput struct {
	Email       string
	Name        string
	CompanyName string
	Industry    string
	Country     string
	PhoneNumber string
	Password    string
}

// Update applies a partial profile update addressed by email.
func (s *Service) Update(ctx context.Context, in UpdateInput) (User, error) {
	if in.Email == "" {
		return User{}, &ValidationError{Field: "email", Reason: "is required"}
	}

	user, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return User{}, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.CompanyName != "" {
		user.CompanyName = in.CompanyName
	}
	if in.Industry != "" {
		user.Industry = in.Industry
	}
	if in.Country != "" {
		user.Country = in.Country
	}
	if in.PhoneNumber != "" {
		user.PhoneNumber = in.PhoneNumber
	}
	if in.Password != "" {
		if len(in.Password) < 8 {
			return User{}, &ValidationError{Field: "password", Reason: "must be at least 8 characters"}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
		if err != nil {
			return User{}, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Delete soft-deletes the user addressed by email.
func (s *Service) Delete(ctx context.Context, email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Reason: "is required"}
	}
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, user.ID)
}
