package project

import (
	"context"
	"errors"
	"testing"
)

const (
	ownerA = "11111111-1111-1111-1111-111111111111"
	ownerB = "22222222-2222-2222-2222-222222222222"
)

func validInput(owner string) CreateInput {
	return CreateInput{
		OwnerID:     owner,
		Code:        "PX1",
		Description: "North refinery revamp",
		CompanyName: "Acme Plant Services",
	}
}

func TestCreateAndGet(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(ownerA))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Get(ctx, ownerA, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Code != "PX1" {
		t.Fatalf("expected code PX1, got %q", got.Code)
	}
}

func TestCreateRejectsBadCode(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	for _, code := range []string{"", "px1", "TOOLONG", "P!"} {
		in := validInput(ownerA)
		in.Code = code
		if _, err := svc.Create(ctx, in); !errors.Is(err, ErrInvalidCode) {
			t.Fatalf("code %q: expected ErrInvalidCode, got %v", code, err)
		}
	}
}

func TestCreateDuplicateCodePerOwner(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Create(ctx, validInput(ownerA)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, validInput(ownerA)); !errors.Is(err, ErrCodeTaken) {
		t.Fatalf("expected ErrCodeTaken, got %v", err)
	}
	// A different owner may reuse the code.
	if _, err := svc.Create(ctx, validInput(ownerB)); err != nil {
		t.Fatalf("other owner create: %v", err)
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(ownerA))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Get(ctx, ownerB, created.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestUpdateKeepsUnsetFields(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(ownerA))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, UpdateInput{OwnerID: ownerA, ID: created.ID, Description: "Updated scope"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Description != "Updated scope" {
		t.Fatalf("description not updated: %q", updated.Description)
	}
	if updated.Code != "PX1" || updated.CompanyName != created.CompanyName {
		t.Fatalf("unset fields must keep stored values: %+v", updated)
	}
}

func TestDeleteHidesProject(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(ownerA))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, ownerA, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, ownerA, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	owns, err := svc.Owns(ctx, ownerA, created.ID)
	if err != nil {
		t.Fatalf("owns: %v", err)
	}
	if owns {
		t.Fatalf("deleted project must not be owned")
	}
}
