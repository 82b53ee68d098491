package checkout

import "time"

// Step is the wizard position for a checkout draft. Forward movement is
// gated on valid step payloads, backward movement is unconditional and
// Completed is terminal.
type Step string

const (
	StepCart      Step = "cart"
	StepAddress   Step = "address"
	StepPayment   Step = "payment"
	StepReview    Step = "review"
	StepCompleted Step = "completed"
)

var stepOrder = map[Step]int{
	StepCart:      0,
	StepAddress:   1,
	StepPayment:   2,
	StepReview:    3,
	StepCompleted: 4,
}

// AppliedCoupon records an accepted coupon on a draft.
type AppliedCoupon struct {
	Code    string `json:"code"`
	Percent int    `json:"percent"`
}

// Draft is one in-flight checkout. Drafts live only in memory; nothing is
// persisted until the order is placed.
type Draft struct {
	ID        string         `json:"id"`
	Step      Step           `json:"step"`
	Shipping  *ShippingForm  `json:"shipping,omitempty"`
	Payment   *PaymentForm   `json:"payment,omitempty"`
	Coupon    *AppliedCoupon `json:"coupon,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// DiscountPercent is the draft's active coupon percentage, zero without one.
func (d *Draft) DiscountPercent() int {
	if d == nil || d.Coupon == nil {
		return 0
	}
	return d.Coupon.Percent
}
