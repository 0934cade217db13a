//go:build !integration

package usecase

import (
	"context"
	"errors"
	"testing"

	"engagesphere/internal/domain"
	"engagesphere/internal/domain/model"
)

func ptr(s string) *string { return &s }

func TestServiceCreate(t *testing.T) {
	uc := NewServiceUseCase(newMemServiceRepo())
	ctx := context.Background()

	svc, err := uc.Create(ctx, "Instagram Growth", "Organic growth campaigns", []model.ServiceContent{
		{Key: "Targeted followers"},
		{Key: "Weekly reports"},
	}, "bG9nbw==")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(svc.Content) != 2 {
		t.Fatalf("content len = %d", len(svc.Content))
	}
	for _, c := range svc.Content {
		if c.ContentID == "" {
			t.Fatal("content entries must get ids assigned")
		}
	}

	if _, err := uc.Create(ctx, "", "desc", nil, ""); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("empty heading: want ErrInvalidArgument, got %v", err)
	}
	if _, err := uc.Create(ctx, "H", "D", []model.ServiceContent{{Key: "  "}}, ""); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("blank content key: want ErrInvalidArgument, got %v", err)
	}
}

func TestServiceUpdate(t *testing.T) {
	repo := newMemServiceRepo()
	uc := NewServiceUseCase(repo)
	ctx := context.Background()

	svc, err := uc.Create(ctx, "Old Heading", "Old description", []model.ServiceContent{{Key: "a"}}, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := uc.Update(ctx, svc.ID, UpdateServiceInput{
		Heading: ptr("New Heading"),
		Content: []model.ServiceContent{{Key: "b"}, {Key: "c"}},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Heading != "New Heading" {
		t.Errorf("heading = %q", updated.Heading)
	}
	if updated.Description != "Old description" {
		t.Errorf("description must be untouched, got %q", updated.Description)
	}
	// Content is a full replacement, not a merge.
	if len(updated.Content) != 2 || updated.Content[0].Key != "b" {
		t.Fatalf("content = %+v", updated.Content)
	}
	if updated.Content[1].ContentID == "" {
		t.Fatal("new content entries must get ids assigned")
	}

	if _, err := uc.Update(ctx, svc.ID, UpdateServiceInput{Heading: ptr("")}); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("empty heading: want ErrInvalidArgument, got %v", err)
	}
	if _, err := uc.Update(ctx, "missing", UpdateServiceInput{}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown service: want ErrNotFound, got %v", err)
	}
}

func TestServiceDeleteContent(t *testing.T) {
	uc := NewServiceUseCase(newMemServiceRepo())
	ctx := context.Background()

	svc, err := uc.Create(ctx, "H", "D", []model.ServiceContent{{Key: "keep"}, {Key: "drop"}}, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	dropID := svc.Content[1].ContentID

	after, err := uc.DeleteContent(ctx, svc.ID, dropID)
	if err != nil {
		t.Fatalf("DeleteContent: %v", err)
	}
	if len(after.Content) != 1 || after.Content[0].Key != "keep" {
		t.Fatalf("content = %+v", after.Content)
	}

	if _, err := uc.DeleteContent(ctx, svc.ID, dropID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: want ErrNotFound, got %v", err)
	}
}

func TestServiceDelete(t *testing.T) {
	uc := NewServiceUseCase(newMemServiceRepo())
	ctx := context.Background()

	svc, _ := uc.Create(ctx, "H", "D", nil, "")
	if err := uc.Delete(ctx, svc.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := uc.GetByID(ctx, svc.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("after delete: want ErrNotFound, got %v", err)
	}
}
