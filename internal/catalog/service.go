package catalog

import (
	"fmt"
	"strings"

	"github.com/handloomhouse/storefront-backend/pkg/errors"
)

// Service exposes read access to the storefront merchandise list.
type Service interface {
	List() []Product
	GetByID(id string) (Product, error)
	ListByVendor(vendor string) []Product
	ValidateSelection(productID string, sel *SelectedVariant) error
}

type service struct {
	products []Product
	byID     map[string]int
}

// NewService builds a catalog over the seeded merchandise list.
func NewService() Service {
	return newService(seedProducts())
}

func newService(products []Product) Service {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}
	return &service{products: products, byID: byID}
}

func (s *service) List() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *service) GetByID(id string) (Product, error) {
	idx, ok := s.byID[strings.TrimSpace(id)]
	if !ok {
		return Product{}, errors.New(errors.CodeNotFound, fmt.Sprintf("product %q not found", id))
	}
	return s.products[idx], nil
}

func (s *service) ListByVendor(vendor string) []Product {
	vendor = strings.TrimSpace(vendor)
	var out []Product
	for _, p := range s.products {
		if strings.EqualFold(p.Vendor, vendor) {
			out = append(out, p)
		}
	}
	return out
}

// ValidateSelection checks a variant selection against the product's declared
// dimensions. A selection naming a dimension the product lacks, or a value
// outside the declared set, is rejected.
func (s *service) ValidateSelection(productID string, sel *SelectedVariant) error {
	product, err := s.GetByID(productID)
	if err != nil {
		return err
	}

	if sel == nil || (sel.Size == "" && sel.Color == "") {
		return nil
	}
	if product.Variants == nil {
		return errors.New(errors.CodeValidation, fmt.Sprintf("product %q has no variants", productID))
	}

	if sel.Size != "" {
		if len(product.Variants.Sizes) == 0 {
			return errors.New(errors.CodeValidation, fmt.Sprintf("product %q has no size options", productID))
		}
		if !containsFold(product.Variants.Sizes, sel.Size) {
			return errors.New(errors.CodeValidation, fmt.Sprintf("size %q not offered for product %q", sel.Size, productID))
		}
	}
	if sel.Color != "" {
		if len(product.Variants.Colors) == 0 {
			return errors.New(errors.CodeValidation, fmt.Sprintf("product %q has no color options", productID))
		}
		if !containsFold(product.Variants.Colors, sel.Color) {
			return errors.New(errors.CodeValidation, fmt.Sprintf("color %q not offered for product %q", sel.Color, productID))
		}
	}
	return nil
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}
