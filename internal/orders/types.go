package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a frozen copy of a cart line at purchase time.
type OrderItem struct {
	ProductID string          `json:"id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"qty"`
}

// Amounts are the money totals frozen when the order was placed. Nothing
// recomputes them afterwards.
type Amounts struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ShipTo is the delivery contact captured from the checkout address step.
type ShipTo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

// PaymentSummary records how the order was paid without retaining raw
// instrument data.
type PaymentSummary struct {
	Method    string `json:"method"`
	CardLast4 string `json:"card_last4,omitempty"`
	UPIHandle string `json:"upi_handle,omitempty"`
}

// Order is one immutable entry in the order log.
type Order struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Items     []OrderItem    `json:"items"`
	Amounts   Amounts        `json:"amounts"`
	ShipTo    ShipTo         `json:"ship_to"`
	Payment   PaymentSummary `json:"payment"`
}
