package address

import (
	"context"
	"testing"

	"github.com/handloomhouse/storefront-backend/pkg/errors"
	"github.com/handloomhouse/storefront-backend/pkg/kvstore"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(kvstore.NewMemoryStore())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func ptr(v string) *string { return &v }

func TestAddAssignsIDAndLists(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	added, err := svc.Add(ctx, Address{Label: "Home", Name: "Meera Rao", Line: "14 Weaver Lane", City: "Hyderabad"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID == "" {
		t.Fatal("expected generated id")
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Label != "Home" {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestAddRequiresLabelNameLine(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Add(context.Background(), Address{Phone: "9876543210"})
	if !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected VALIDATION, got %v", err)
	}
	details, ok := errors.As(err).Details().(map[string]string)
	if !ok {
		t.Fatalf("expected details map, got %T", errors.As(err).Details())
	}
	for _, field := range []string{"label", "name", "line"} {
		if details[field] == "" {
			t.Fatalf("expected %s detail, got %+v", field, details)
		}
	}
}

func TestUpdate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	added, err := svc.Add(ctx, Address{Label: "Home", Name: "Meera Rao", Line: "14 Weaver Lane"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	updated, err := svc.Update(ctx, added.ID, Patch{Label: ptr("Office"), City: ptr("Hyderabad")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Label != "Office" || updated.City != "Hyderabad" {
		t.Fatalf("unexpected updated address %+v", updated)
	}
	if updated.Name != "Meera Rao" {
		t.Fatalf("unpatched field must survive, got %+v", updated)
	}

	_, err = svc.Update(ctx, "missing", Patch{Label: ptr("x")})
	if !errors.IsCode(err, errors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	added, err := svc.Add(ctx, Address{Label: "Home", Name: "Meera Rao", Line: "14 Weaver Lane"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Delete(ctx, added.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %+v", list)
	}

	// deleting an absent id is a no-op
	if err := svc.Delete(ctx, "missing"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
}
