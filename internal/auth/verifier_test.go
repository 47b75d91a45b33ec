package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/pipespec/pipespec/internal/identity"
)

func seedUser(t *testing.T, repo identity.Repository, email, password string) identity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := identity.User{ID: "8d5c1f2e-39aa-4c9e-ae8f-0f8e2ab1c111", Name: "Ada", Email: email, PasswordHash: hash}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestVerifyCorrectPassword(t *testing.T) {
	repo := identity.NewMemoryRepository()
	seedUser(t, repo, "a@x.com", "secret-password")
	v := NewVerifier(repo)

	user, err := v.Verify(context.Background(), "a@x.com", "secret-password")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Fatalf("unexpected user %q", user.Email)
	}
}

func TestVerifyWrongPassword(t *testing.T) {
	repo := identity.NewMemoryRepository()
	seedUser(t, repo, "a@x.com", "secret-password")
	v := NewVerifier(repo)

	_, err := v.Verify(context.Background(), "a@x.com", "wrong")
	if !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
}

func TestVerifyUnknownEmail(t *testing.T) {
	repo := identity.NewMemoryRepository()
	seedUser(t, repo, "a@x.com", "secret-password")
	v := NewVerifier(repo)

	_, err := v.Verify(context.Background(), "b@x.com", "secret-password")
	if !errors.Is(err, ErrNoSuchUser) {
		t.Fatalf("expected ErrNoSuchUser, got %v", err)
	}
}

func TestVerifySoftDeletedUser(t *testing.T) {
	repo := identity.NewMemoryRepository()
	user := seedUser(t, repo, "a@x.com", "secret-password")
	if err := repo.SoftDelete(context.Background(), user.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	v := NewVerifier(repo)

	_, err := v.Verify(context.Background(), "a@x.com", "secret-password")
	if !errors.Is(err, ErrNoSuchUser) {
		t.Fatalf("expected ErrNoSuchUser after soft delete, got %v", err)
	}
}

func TestVerifyEmptyInput(t *testing.T) {
	v := NewVerifier(identity.NewMemoryRepository())
	if _, err := v.Verify(context.Background(), "", "pw"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials for empty email, got %v", err)
	}
	if _, err := v.Verify(context.Background(), "a@x.com", ""); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials for empty password, got %v", err)
	}
}

type failingRepository struct {
	identity.Repository
}

func (failingRepository) FindByEmail(context.Context, string) (identity.User, error) {
	return identity.User{}, errors.New("connection refused")
}

func TestVerifyLookupFailure(t *testing.T) {
	v := NewVerifier(failingRepository{})

	_, err := v.Verify(context.Background(), "a@x.com", "secret-password")
	if !errors.Is(err, ErrLookupFailed) {
		t.Fatalf("expected ErrLookupFailed, got %v", err)
	}
	if errors.Is(err, ErrNoSuchUser) || errors.Is(err, ErrBadCredentials) {
		t.Fatalf("lookup failure must not look like a credential failure: %v", err)
	}
}
