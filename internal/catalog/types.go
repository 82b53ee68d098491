package catalog

import "github.com/shopspring/decimal"

// VariantDimensions declares the option axes a product can be bought in.
// A nil dimension means the product does not vary on that axis.
type VariantDimensions struct {
	Sizes  []string `json:"sizes,omitempty"`
	Colors []string `json:"colors,omitempty"`
}

// SelectedVariant is the buyer's choice for a product's variant dimensions.
type SelectedVariant struct {
	Size  string `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

// Product is one sellable storefront item.
type Product struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Vendor    string             `json:"vendor"`
	Image     string             `json:"image"`
	Category  string             `json:"category"`
	Material  string             `json:"material"`
	Region    string             `json:"region"`
	Badges    []string           `json:"badges,omitempty"`
	Price     decimal.Decimal    `json:"price"`
	CompareAt *decimal.Decimal   `json:"compare_at,omitempty"`
	Rating    float64            `json:"rating"`
	Reviews   int                `json:"reviews"`
	Stock     *int               `json:"stock,omitempty"`
	Variants  *VariantDimensions `json:"variants,omitempty"`
}
