package catalog

import "github.com/shopspring/decimal"

func price(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func pricePtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func stock(n int) *int {
	return &n
}

// seedProducts is the storefront's merchandise list. IDs are stable slugs the
// cart and order records reference.
func seedProducts() []Product {
	return []Product{
		{
			ID:        "hl-001",
			Title:     "Banarasi Silk Sari",
			Vendor:    "Varanasi Weaves",
			Image:     "/images/banarasi-silk-sari.jpg",
			Category:  "Sari",
			Material:  "Silk",
			Region:    "Uttar Pradesh",
			Badges:    []string{"Bestseller"},
			Price:     price("120.00"),
			CompareAt: pricePtr("150.00"),
			Rating:    4.8,
			Reviews:   214,
			Stock:     stock(12),
		},
		{
			ID:       "hl-002",
			Title:    "Ikat Cotton Shawl",
			Vendor:   "Pochampally Looms",
			Image:    "/images/ikat-cotton-shawl.jpg",
			Category: "Shawl",
			Material: "Cotton",
			Region:   "Telangana",
			Price:    price("45.00"),
			Rating:   4.6,
			Reviews:  98,
			Stock:    stock(30),
			Variants: &VariantDimensions{
				Colors: []string{"indigo", "rust", "charcoal"},
			},
		},
		{
			ID:       "hl-003",
			Title:    "Kanchipuram Silk Stole",
			Vendor:   "Kanchi Silk House",
			Image:    "/images/kanchipuram-silk-stole.jpg",
			Category: "Stole",
			Material: "Silk",
			Region:   "Tamil Nadu",
			Badges:   []string{"New"},
			Price:    price("68.50"),
			Rating:   4.7,
			Reviews:  41,
			Stock:    stock(18),
		},
		{
			ID:       "hl-004",
			Title:    "Khadi Kurta",
			Vendor:   "Gram Swaraj Collective",
			Image:    "/images/khadi-kurta.jpg",
			Category: "Apparel",
			Material: "Khadi",
			Region:   "Gujarat",
			Price:    price("38.00"),
			Rating:   4.4,
			Reviews:  67,
			Stock:    stock(40),
			Variants: &VariantDimensions{
				Sizes:  []string{"S", "M", "L", "XL"},
				Colors: []string{"natural", "indigo"},
			},
		},
		{
			ID:        "hl-005",
			Title:     "Pashmina Wool Scarf",
			Vendor:    "Srinagar Craft Guild",
			Image:     "/images/pashmina-wool-scarf.jpg",
			Category:  "Scarf",
			Material:  "Wool",
			Region:    "Kashmir",
			Badges:    []string{"Limited"},
			Price:     price("95.00"),
			CompareAt: pricePtr("130.00"),
			Rating:    4.9,
			Reviews:   152,
			Stock:     stock(6),
		},
		{
			ID:       "hl-006",
			Title:    "Block Print Table Runner",
			Vendor:   "Bagru Prints",
			Image:    "/images/block-print-table-runner.jpg",
			Category: "Home",
			Material: "Cotton",
			Region:   "Rajasthan",
			Price:    price("24.00"),
			Rating:   4.3,
			Reviews:  33,
			Stock:    stock(55),
		},
		{
			ID:       "hl-007",
			Title:    "Chanderi Dupatta",
			Vendor:   "Chanderi Handlooms",
			Image:    "/images/chanderi-dupatta.jpg",
			Category: "Dupatta",
			Material: "Silk Cotton",
			Region:   "Madhya Pradesh",
			Price:    price("52.00"),
			Rating:   4.5,
			Reviews:  76,
			Stock:    stock(22),
			Variants: &VariantDimensions{
				Colors: []string{"rose", "gold", "teal"},
			},
		},
		{
			ID:       "hl-008",
			Title:    "Kalamkari Cushion Cover Set",
			Vendor:   "Srikalahasti Artists",
			Image:    "/images/kalamkari-cushion-covers.jpg",
			Category: "Home",
			Material: "Cotton",
			Region:   "Andhra Pradesh",
			Price:    price("30.00"),
			Rating:   4.2,
			Reviews:  28,
			Stock:    stock(44),
		},
	}
}
