package pricing

import (
	"github.com/handloomhouse/storefront-backend/pkg/config"
	"github.com/shopspring/decimal"
)

// Policy captures the storefront pricing rules applied to every derived cart
// view and frozen into each order at creation time.
type Policy struct {
	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
}

// NewPolicy builds a policy from configuration.
func NewPolicy(cfg config.PricingConfig) Policy {
	return Policy{
		TaxRate:               decimal.NewFromInt(int64(cfg.TaxRatePercent)).Div(decimal.NewFromInt(100)),
		FreeShippingThreshold: decimal.NewFromInt(int64(cfg.FreeShippingThreshold)),
		FlatShippingFee:       decimal.NewFromInt(int64(cfg.FlatShippingFee)),
	}
}

// DefaultPolicy returns the published store policy: 8% tax, free shipping at
// $100, $8 flat fee below it.
func DefaultPolicy() Policy {
	return NewPolicy(config.PricingConfig{
		TaxRatePercent:        8,
		FreeShippingThreshold: 100,
		FlatShippingFee:       8,
	})
}

// Shipping is zero for an empty cart and for subtotals at or above the free
// shipping threshold; otherwise the flat fee applies.
func (p Policy) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.FlatShippingFee
}

// Tax applies the tax rate to the subtotal, rounded to cents.
func (p Policy) Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(p.TaxRate).Round(2)
}

// Discount applies a whole-number percentage to the subtotal, rounded to cents.
func (p Policy) Discount(subtotal decimal.Decimal, percent int) decimal.Decimal {
	if percent <= 0 || subtotal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return subtotal.Mul(decimal.NewFromInt(int64(percent))).Div(decimal.NewFromInt(100)).Round(2)
}

// Total combines the aggregates: subtotal - discount + shipping + tax.
func (p Policy) Total(subtotal, discount, shipping, tax decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(discount).Add(shipping).Add(tax)
}
