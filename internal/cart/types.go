package cart

import (
	"github.com/shopspring/decimal"

	"github.com/handloomhouse/storefront-backend/internal/catalog"
)

// Line is one cart entry. Lines are unique per product id.
type Line struct {
	ProductID string                   `json:"id"`
	Quantity  int                      `json:"qty"`
	Variant   *catalog.SelectedVariant `json:"variant,omitempty"`
}

// DerivedLine joins a cart line against the catalog for display and pricing.
type DerivedLine struct {
	ProductID string                   `json:"id"`
	Title     string                   `json:"title"`
	Vendor    string                   `json:"vendor"`
	Image     string                   `json:"image"`
	Price     decimal.Decimal          `json:"price"`
	Quantity  int                      `json:"qty"`
	Variant   *catalog.SelectedVariant `json:"variant,omitempty"`
	LineTotal decimal.Decimal          `json:"line_total"`
}

// Summary is the derived view of the whole cart.
type Summary struct {
	Lines    []DerivedLine   `json:"lines"`
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}
