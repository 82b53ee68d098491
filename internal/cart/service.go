package cart

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/handloomhouse/storefront-backend/internal/catalog"
	"github.com/handloomhouse/storefront-backend/pkg/errors"
	"github.com/handloomhouse/storefront-backend/pkg/logger"
	"github.com/handloomhouse/storefront-backend/pkg/pricing"
)

// Service is the cart ledger. Every mutating call persists the whole line
// list before returning.
type Service interface {
	Add(ctx context.Context, productID string, qty int, variant *catalog.SelectedVariant) ([]Line, error)
	SetQuantity(ctx context.Context, productID string, qty int) ([]Line, error)
	Remove(ctx context.Context, productID string) ([]Line, error)
	Clear(ctx context.Context) error
	Lines(ctx context.Context) ([]Line, error)
	Derive(ctx context.Context, discountPercent int) (Summary, error)
}

// ServiceParams wires the cart service dependencies.
type ServiceParams struct {
	Repo    Repo
	Catalog catalog.Service
	Pricing pricing.Policy
	Logger  *logger.Logger
}

type service struct {
	repo    Repo
	catalog catalog.Service
	pricing pricing.Policy
	logg    *logger.Logger
}

// NewService validates the wiring and returns the cart ledger.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("cart repo is required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog service is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		repo:    params.Repo,
		catalog: params.Catalog,
		pricing: params.Pricing,
		logg:    params.Logger,
	}, nil
}

func (s *service) Add(ctx context.Context, productID string, qty int, variant *catalog.SelectedVariant) ([]Line, error) {
	if qty < 1 {
		return nil, errors.New(errors.CodeInvalidQuantity, "quantity must be at least 1")
	}
	product, err := s.catalog.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if err := s.catalog.ValidateSelection(productID, variant); err != nil {
		return nil, err
	}

	lines, err := s.repo.Lines(ctx)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range lines {
		if lines[i].ProductID == productID {
			if err := checkStock(product, lines[i].Quantity+qty); err != nil {
				return nil, err
			}
			lines[i].Quantity += qty
			if variant != nil {
				lines[i].Variant = variant
			}
			merged = true
			break
		}
	}
	if !merged {
		if err := checkStock(product, qty); err != nil {
			return nil, err
		}
		lines = append(lines, Line{ProductID: productID, Quantity: qty, Variant: variant})
	}

	if err := s.repo.Save(ctx, lines); err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"product_id": productID, "qty": qty}), "cart line added")
	return lines, nil
}

// checkStock caps a line at the product's stock when one is declared.
func checkStock(product catalog.Product, want int) error {
	if product.Stock == nil || want <= *product.Stock {
		return nil
	}
	return errors.New(errors.CodeInvalidQuantity, fmt.Sprintf("only %d of %q in stock", *product.Stock, product.ID))
}

func (s *service) SetQuantity(ctx context.Context, productID string, qty int) ([]Line, error) {
	lines, err := s.repo.Lines(ctx)
	if err != nil {
		return nil, err
	}

	next := make([]Line, 0, len(lines))
	for _, line := range lines {
		if line.ProductID != productID {
			next = append(next, line)
			continue
		}
		if qty <= 0 {
			continue
		}
		line.Quantity = qty
		next = append(next, line)
	}

	if err := s.repo.Save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *service) Remove(ctx context.Context, productID string) ([]Line, error) {
	return s.SetQuantity(ctx, productID, 0)
}

func (s *service) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

func (s *service) Lines(ctx context.Context) ([]Line, error) {
	return s.repo.Lines(ctx)
}

// Derive joins the ledger against the catalog and computes the money totals.
// Lines whose product vanished from the catalog are skipped rather than
// failing the whole derivation.
func (s *service) Derive(ctx context.Context, discountPercent int) (Summary, error) {
	lines, err := s.repo.Lines(ctx)
	if err != nil {
		return Summary{}, err
	}
	return s.derive(ctx, lines, discountPercent), nil
}

func (s *service) derive(ctx context.Context, lines []Line, discountPercent int) Summary {
	summary := Summary{
		Lines:    make([]DerivedLine, 0, len(lines)),
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
		Shipping: decimal.Zero,
		Tax:      decimal.Zero,
		Total:    decimal.Zero,
	}

	for _, line := range lines {
		product, err := s.catalog.GetByID(line.ProductID)
		if err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "product_id", line.ProductID), "cart line references unknown product")
			continue
		}
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		summary.Lines = append(summary.Lines, DerivedLine{
			ProductID: product.ID,
			Title:     product.Title,
			Vendor:    product.Vendor,
			Image:     product.Image,
			Price:     product.Price,
			Quantity:  line.Quantity,
			Variant:   line.Variant,
			LineTotal: lineTotal,
		})
		summary.Count += line.Quantity
		summary.Subtotal = summary.Subtotal.Add(lineTotal)
	}

	if len(summary.Lines) == 0 {
		return summary
	}

	summary.Discount = s.pricing.Discount(summary.Subtotal, discountPercent)
	summary.Shipping = s.pricing.Shipping(summary.Subtotal)
	summary.Tax = s.pricing.Tax(summary.Subtotal)
	summary.Total = s.pricing.Total(summary.Subtotal, summary.Discount, summary.Shipping, summary.Tax)
	return summary
}
