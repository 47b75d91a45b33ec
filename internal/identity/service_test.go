package identity

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func testInput() RegisterInput {
	return RegisterInput{
		Name:        "Ada Lovelace",
		CompanyName: "Analytical Engines Ltd",
		Email:       "Ada@Example.com",
		Industry:    "Engineering",
		Country:     "UK",
		PhoneNumber: "+44 20 0000 0000",
		Password:    "correct-horse",
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, bcrypt.MinCost)
	ctx := context.Background()

	user, err := svc.Register(ctx, testInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte("correct-horse")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository(), bcrypt.MinCost)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"empty name", func(in *RegisterInput) { in.Name = " " }},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }},
		{"short password", func(in *RegisterInput) { in.Password = "short" }},
	}
	for _, tc := range cases {
		in := testInput()
		tc.mutate(&in)
		var verr *ValidationError
		if _, err := svc.Register(ctx, in); !errors.As(err, &verr) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(NewMemoryRepository(), bcrypt.MinCost)
	ctx := context.Background()

	if _, err := svc.Register(ctx, testInput()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, testInput()); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUpdatePartialFields(t *testing.T) {
	svc := NewService(NewMemoryRepository(), bcrypt.MinCost)
	ctx := context.Background()

	if _, err := svc.Register(ctx, testInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	updated, err := svc.Update(ctx, UpdateInput{Email: "ada@example.com", Country: "France"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Country != "France" {
		t.Fatalf("expected country update, got %q", updated.Country)
	}
	if updated.Name != "Ada Lovelace" {
		t.Fatalf("empty fields must keep stored values, got %q", updated.Name)
	}
}

func TestUpdateRehashesPassword(t *testing.T) {
	svc := NewService(NewMemoryRepository(), bcrypt.MinCost)
	ctx := context.Background()

	if _, err := svc.Register(ctx, testInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	updated, err := svc.Update(ctx, UpdateInput{Email: "ada@example.com", Password: "new-password-1"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword(updated.PasswordHash, []byte("new-password-1")); err != nil {
		t.Fatalf("password was not re-hashed: %v", err)
	}
}

func TestDeleteIsSoft(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, bcrypt.MinCost)
	ctx := context.Background()

	if _, err := svc.Register(ctx, testInput()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.Delete(ctx, "ada@example.com"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByEmail(ctx, "ada@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted user must be invisible to lookups, got %v", err)
	}
	if err := svc.Delete(ctx, "ada@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete must report not found, got %v", err)
	}
}
