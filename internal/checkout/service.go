package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/handloomhouse/storefront-backend/internal/cart"
	"github.com/handloomhouse/storefront-backend/internal/orders"
	"github.com/handloomhouse/storefront-backend/pkg/errors"
	"github.com/handloomhouse/storefront-backend/pkg/logger"
	"github.com/handloomhouse/storefront-backend/pkg/metrics"
)

// Service drives the checkout wizard from an open cart to a recorded order.
type Service interface {
	Start(ctx context.Context) (Draft, error)
	Get(ctx context.Context, id string) (Draft, error)
	SubmitAddress(ctx context.Context, id string, form ShippingForm) (Draft, error)
	SubmitPayment(ctx context.Context, id string, form PaymentForm) (Draft, error)
	Back(ctx context.Context, id string) (Draft, error)
	ApplyCoupon(ctx context.Context, id, code string) (Draft, error)
	RemoveCoupon(ctx context.Context, id string) (Draft, error)
	Summary(ctx context.Context, id string) (cart.Summary, error)
	Place(ctx context.Context, id string) (orders.Order, error)
}

// ServiceParams wires the checkout service dependencies.
type ServiceParams struct {
	Cart    cart.Service
	Orders  orders.Service
	Logger  *logger.Logger
	Metrics *metrics.StorefrontMetrics
	Now     func() time.Time
}

type service struct {
	drafts  *registry
	cart    cart.Service
	orders  orders.Service
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
	now     func() time.Time
}

// NewService validates the wiring and returns the wizard.
func NewService(params ServiceParams) (Service, error) {
	if params.Cart == nil {
		return nil, fmt.Errorf("cart service is required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders service is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		drafts:  newRegistry(draftTTL, now),
		cart:    params.Cart,
		orders:  params.Orders,
		logg:    params.Logger,
		metrics: params.Metrics,
		now:     now,
	}, nil
}

// Start opens a draft for the current cart. An empty cart cannot enter the
// wizard.
func (s *service) Start(ctx context.Context) (Draft, error) {
	lines, err := s.cart.Lines(ctx)
	if err != nil {
		return Draft{}, err
	}
	if len(lines) == 0 {
		return Draft{}, errors.New(errors.CodeStateConflict, "cart is empty")
	}

	draft := &Draft{
		ID:        uuid.NewString(),
		Step:      StepAddress,
		CreatedAt: s.now(),
	}
	s.drafts.put(draft)
	s.metrics.IncCheckoutOpened()
	s.logg.Info(s.logg.WithDraftID(ctx, draft.ID), "checkout draft opened")
	return *draft, nil
}

func (s *service) Get(ctx context.Context, id string) (Draft, error) {
	return s.drafts.get(id)
}

// SubmitAddress validates the shipping form and advances to the payment
// step. On validation failure the step does not move and the per-field
// details ride on the error.
func (s *service) SubmitAddress(ctx context.Context, id string, form ShippingForm) (Draft, error) {
	return s.drafts.update(id, func(d *Draft) error {
		if d.Step == StepCompleted {
			return errors.New(errors.CodeStateConflict, "checkout already completed")
		}
		if stepOrder[d.Step] > stepOrder[StepAddress] {
			return errors.New(errors.CodeStateConflict, "address step already submitted")
		}
		if err := validateForm(form); err != nil {
			return err
		}
		d.Shipping = &form
		d.Step = StepPayment
		return nil
	})
}

// SubmitPayment validates the payment form and advances to review. Card and
// UPI payloads are both validated for real; there is no pass-through method.
func (s *service) SubmitPayment(ctx context.Context, id string, form PaymentForm) (Draft, error) {
	return s.drafts.update(id, func(d *Draft) error {
		if d.Step == StepCompleted {
			return errors.New(errors.CodeStateConflict, "checkout already completed")
		}
		if d.Step != StepPayment {
			return errors.New(errors.CodeStateConflict, fmt.Sprintf("payment cannot be submitted at step %s", d.Step))
		}
		if err := validateForm(form); err != nil {
			return err
		}
		d.Payment = &form
		d.Step = StepReview
		return nil
	})
}

// Back moves one step toward the cart. Submitted field values are retained.
func (s *service) Back(ctx context.Context, id string) (Draft, error) {
	return s.drafts.update(id, func(d *Draft) error {
		if d.Step == StepCompleted {
			return errors.New(errors.CodeStateConflict, "checkout already completed")
		}
		switch d.Step {
		case StepPayment:
			d.Step = StepAddress
		case StepReview:
			d.Step = StepPayment
		case StepAddress:
			d.Step = StepCart
		}
		return nil
	})
}

// ApplyCoupon validates and attaches a coupon. An unknown code clears any
// applied discount and reports INVALID_COUPON; checkout remains usable.
func (s *service) ApplyCoupon(ctx context.Context, id, code string) (Draft, error) {
	draft, err := s.drafts.update(id, func(d *Draft) error {
		if d.Step == StepCompleted {
			return errors.New(errors.CodeStateConflict, "checkout already completed")
		}
		normalized := normalizeCoupon(code)
		percent, ok := couponTable[normalized]
		if !ok {
			d.Coupon = nil
			return errors.New(errors.CodeInvalidCoupon, fmt.Sprintf("coupon %q is not valid", normalized))
		}
		d.Coupon = &AppliedCoupon{Code: normalized, Percent: percent}
		return nil
	})
	if err != nil {
		if errors.IsCode(err, errors.CodeInvalidCoupon) {
			s.metrics.IncCouponAttempt("rejected")
		}
		return Draft{}, err
	}
	s.metrics.IncCouponAttempt("accepted")
	return draft, nil
}

// RemoveCoupon drops any applied coupon.
func (s *service) RemoveCoupon(ctx context.Context, id string) (Draft, error) {
	return s.drafts.update(id, func(d *Draft) error {
		if d.Step == StepCompleted {
			return errors.New(errors.CodeStateConflict, "checkout already completed")
		}
		d.Coupon = nil
		return nil
	})
}

// Summary derives the cart view at the draft's discount percent.
func (s *service) Summary(ctx context.Context, id string) (cart.Summary, error) {
	draft, err := s.drafts.get(id)
	if err != nil {
		return cart.Summary{}, err
	}
	return s.cart.Derive(ctx, draft.DiscountPercent())
}

// Place finalizes the order from the review step, marks the draft completed
// and drops it from the registry.
func (s *service) Place(ctx context.Context, id string) (orders.Order, error) {
	draft, err := s.drafts.update(id, func(d *Draft) error {
		if d.Step != StepReview {
			return errors.New(errors.CodeStateConflict, fmt.Sprintf("order cannot be placed at step %s", d.Step))
		}
		if d.Shipping == nil || d.Payment == nil {
			return errors.New(errors.CodeStateConflict, "checkout steps incomplete")
		}
		return nil
	})
	if err != nil {
		return orders.Order{}, err
	}

	view, err := s.cart.Derive(ctx, draft.DiscountPercent())
	if err != nil {
		return orders.Order{}, err
	}

	shipTo := orders.ShipTo{
		Name:    fmt.Sprintf("%s %s", draft.Shipping.FirstName, draft.Shipping.LastName),
		Email:   draft.Shipping.Email,
		Phone:   draft.Shipping.Phone,
		Address: draft.Shipping.Address,
		City:    draft.Shipping.City,
		State:   draft.Shipping.State,
		Zip:     draft.Shipping.Zip,
	}
	payment := orders.PaymentSummary{Method: draft.Payment.Method}
	switch draft.Payment.Method {
	case MethodCard:
		payment.CardLast4 = draft.Payment.CardLast4()
	case MethodUPI:
		payment.UPIHandle = draft.Payment.UPIHandle
	}

	order, err := s.orders.Finalize(ctx, view, shipTo, payment)
	if err != nil {
		return orders.Order{}, err
	}

	if _, err := s.drafts.update(id, func(d *Draft) error {
		d.Step = StepCompleted
		return nil
	}); err != nil {
		s.logg.Warn(s.logg.WithDraftID(ctx, id), "draft vanished before completion mark")
	}
	s.drafts.drop(id)

	s.logg.Info(s.logg.WithOrderID(s.logg.WithDraftID(ctx, id), order.ID), "checkout completed")
	return order, nil
}
