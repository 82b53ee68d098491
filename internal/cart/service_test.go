package cart

import (
	"context"
	"io"
	"testing"

	"github.com/handloomhouse/storefront-backend/internal/catalog"
	"github.com/handloomhouse/storefront-backend/pkg/errors"
	"github.com/handloomhouse/storefront-backend/pkg/kvstore"
	"github.com/handloomhouse/storefront-backend/pkg/logger"
	"github.com/handloomhouse/storefront-backend/pkg/pricing"
)

func newTestService(t *testing.T) (Service, kvstore.TxStore) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	svc, err := NewService(ServiceParams{
		Repo:    NewRepo(store),
		Catalog: catalog.NewService(),
		Pricing: pricing.DefaultPolicy(),
		Logger:  logger.New(logger.Options{ServiceName: "cart-test", Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, store
}

func TestAddRejectsInvalidQuantity(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, qty := range []int{0, -1, -10} {
		_, err := svc.Add(ctx, "hl-001", qty, nil)
		if !errors.IsCode(err, errors.CodeInvalidQuantity) {
			t.Fatalf("qty %d: expected INVALID_QUANTITY, got %v", qty, err)
		}
	}

	lines, err := svc.Lines(ctx)
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("rejected adds must not persist, got %+v", lines)
	}
}

func TestAddCapsQuantityAtStock(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// hl-005 carries a stock of 6
	_, err := svc.Add(ctx, "hl-005", 7, nil)
	if !errors.IsCode(err, errors.CodeInvalidQuantity) {
		t.Fatalf("expected INVALID_QUANTITY over stock, got %v", err)
	}

	if _, err := svc.Add(ctx, "hl-005", 4, nil); err != nil {
		t.Fatalf("add within stock: %v", err)
	}
	_, err = svc.Add(ctx, "hl-005", 3, nil)
	if !errors.IsCode(err, errors.CodeInvalidQuantity) {
		t.Fatalf("expected INVALID_QUANTITY when merge exceeds stock, got %v", err)
	}

	lines, err := svc.Lines(ctx)
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 4 {
		t.Fatalf("rejected increment must leave the stored quantity, got %+v", lines)
	}
}

func TestAddUnknownProduct(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Add(context.Background(), "hl-999", 1, nil)
	if !errors.IsCode(err, errors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestAddMergesDuplicateProduct(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "hl-002", 1, &catalog.SelectedVariant{Color: "indigo"}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	lines, err := svc.Add(ctx, "hl-002", 2, nil)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if len(lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("expected qty 3, got %d", lines[0].Quantity)
	}
	if lines[0].Variant == nil || lines[0].Variant.Color != "indigo" {
		t.Fatalf("nil variant on increment must keep stored selection, got %+v", lines[0].Variant)
	}
}

func TestAddReplacesVariantOnIncrement(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "hl-002", 1, &catalog.SelectedVariant{Color: "indigo"}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	lines, err := svc.Add(ctx, "hl-002", 1, &catalog.SelectedVariant{Color: "rust"})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if lines[0].Variant == nil || lines[0].Variant.Color != "rust" {
		t.Fatalf("expected variant replaced, got %+v", lines[0].Variant)
	}
}

func TestAddRejectsInvalidVariant(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Add(context.Background(), "hl-002", 1, &catalog.SelectedVariant{Color: "neon"})
	if !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected VALIDATION, got %v", err)
	}
}

func TestSetQuantity(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "hl-002", 2, &catalog.SelectedVariant{Color: "rust"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	lines, err := svc.SetQuantity(ctx, "hl-002", 5)
	if err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if lines[0].Quantity != 5 {
		t.Fatalf("expected qty 5, got %d", lines[0].Quantity)
	}
	if lines[0].Variant == nil || lines[0].Variant.Color != "rust" {
		t.Fatalf("variant must survive quantity updates, got %+v", lines[0].Variant)
	}

	// zero and below removes
	lines, err = svc.SetQuantity(ctx, "hl-002", 0)
	if err != nil {
		t.Fatalf("set quantity zero: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected line removed, got %+v", lines)
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "hl-001", 1, nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	lines, err := svc.Remove(ctx, "hl-404")
	if err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected untouched cart, got %+v", lines)
	}
}

func TestClear(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "hl-001", 1, nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	lines, err := svc.Lines(ctx)
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", lines)
	}
}

func TestDeriveWorkedExample(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// hl-001 is 120.00: free shipping, tax 9.60, total 129.60
	if _, err := svc.Add(ctx, "hl-001", 1, nil); err != nil {
		t.Fatalf("add: %v", err)
	}

	summary, err := svc.Derive(ctx, 0)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if summary.Count != 1 {
		t.Fatalf("expected count 1, got %d", summary.Count)
	}
	if summary.Subtotal.String() != "120" {
		t.Fatalf("unexpected subtotal %s", summary.Subtotal)
	}
	if !summary.Shipping.IsZero() {
		t.Fatalf("expected free shipping, got %s", summary.Shipping)
	}
	if summary.Tax.String() != "9.6" {
		t.Fatalf("unexpected tax %s", summary.Tax)
	}
	if summary.Total.String() != "129.6" {
		t.Fatalf("unexpected total %s", summary.Total)
	}
}

func TestDeriveBelowFreeShippingThreshold(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// hl-008 is 30.00: shipping 8.00, tax 2.40, total 40.40
	if _, err := svc.Add(ctx, "hl-008", 1, nil); err != nil {
		t.Fatalf("add: %v", err)
	}

	summary, err := svc.Derive(ctx, 0)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if summary.Shipping.String() != "8" {
		t.Fatalf("unexpected shipping %s", summary.Shipping)
	}
	if summary.Tax.String() != "2.4" {
		t.Fatalf("unexpected tax %s", summary.Tax)
	}
	if summary.Total.String() != "40.4" {
		t.Fatalf("unexpected total %s", summary.Total)
	}
}

func TestDeriveWithCouponDiscount(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// hl-008 is 30.00 with 10% off: discount 3.00, total 37.40
	if _, err := svc.Add(ctx, "hl-008", 1, nil); err != nil {
		t.Fatalf("add: %v", err)
	}

	summary, err := svc.Derive(ctx, 10)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if summary.Discount.String() != "3" {
		t.Fatalf("unexpected discount %s", summary.Discount)
	}
	if summary.Total.String() != "37.4" {
		t.Fatalf("unexpected total %s", summary.Total)
	}
}

func TestDeriveEmptyCartIsAllZeros(t *testing.T) {
	svc, _ := newTestService(t)

	summary, err := svc.Derive(context.Background(), 10)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if summary.Count != 0 || len(summary.Lines) != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
	for name, v := range map[string]string{
		"subtotal": summary.Subtotal.String(),
		"discount": summary.Discount.String(),
		"shipping": summary.Shipping.String(),
		"tax":      summary.Tax.String(),
		"total":    summary.Total.String(),
	} {
		if v != "0" {
			t.Fatalf("expected %s to be 0, got %s", name, v)
		}
	}
}
