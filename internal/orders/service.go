package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/handloomhouse/storefront-backend/internal/cart"
	"github.com/handloomhouse/storefront-backend/pkg/errors"
	"github.com/handloomhouse/storefront-backend/pkg/kvstore"
	"github.com/handloomhouse/storefront-backend/pkg/logger"
	"github.com/handloomhouse/storefront-backend/pkg/metrics"
)

// Service records finalized checkouts and reads the order log.
type Service interface {
	Finalize(ctx context.Context, view cart.Summary, shipTo ShipTo, payment PaymentSummary) (Order, error)
	ListMine(ctx context.Context, email string) ([]Order, error)
	Get(ctx context.Context, id string) (Order, error)
}

// ServiceParams wires the order service dependencies.
type ServiceParams struct {
	Store    kvstore.TxStore
	Repo     Repo
	CartRepo cart.Repo
	Logger   *logger.Logger
	Metrics  *metrics.StorefrontMetrics
	Now      func() time.Time
}

type service struct {
	store    kvstore.TxStore
	repo     Repo
	cartRepo cart.Repo
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics
	now      func() time.Time
}

// NewService validates the wiring and returns the order recorder.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("tx store is required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("order repo is required")
	}
	if params.CartRepo == nil {
		return nil, fmt.Errorf("cart repo is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		store:    params.Store,
		repo:     params.Repo,
		cartRepo: params.CartRepo,
		logg:     params.Logger,
		metrics:  params.Metrics,
		now:      now,
	}, nil
}

// Finalize freezes the derived cart view into an order, appends it to the
// order log and clears the cart. Both writes land in one transaction; a
// storage failure leaves the log and the cart untouched.
func (s *service) Finalize(ctx context.Context, view cart.Summary, shipTo ShipTo, payment PaymentSummary) (Order, error) {
	if len(view.Lines) == 0 {
		return Order{}, errors.New(errors.CodeStateConflict, "cannot place an order for an empty cart")
	}

	items := make([]OrderItem, 0, len(view.Lines))
	for _, line := range view.Lines {
		items = append(items, OrderItem{
			ProductID: line.ProductID,
			Title:     line.Title,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}

	order := Order{
		ID:        uuid.NewString(),
		CreatedAt: s.now(),
		Items:     items,
		Amounts: Amounts{
			Subtotal: view.Subtotal,
			Discount: view.Discount,
			Shipping: view.Shipping,
			Tax:      view.Tax,
			Total:    view.Total,
		},
		ShipTo:  shipTo,
		Payment: payment,
	}

	err := s.store.WithTx(ctx, func(tx kvstore.Store) error {
		txOrders := s.repo.WithStore(tx)
		all, err := txOrders.All(ctx)
		if err != nil {
			return err
		}
		if err := txOrders.Save(ctx, append(all, order)); err != nil {
			return err
		}
		return s.cartRepo.WithStore(tx).Clear(ctx)
	})
	if err != nil {
		if errors.As(err) != nil {
			return Order{}, err
		}
		return Order{}, errors.Wrap(errors.CodeStorage, err, "recording order")
	}

	s.metrics.IncOrderPlaced()
	s.logg.Info(s.logg.WithOrderID(ctx, order.ID), "order recorded")
	return order, nil
}

// ListMine returns the caller's orders, newest first, matched on the
// shipping email.
func (s *service) ListMine(ctx context.Context, email string) ([]Order, error) {
	email = strings.TrimSpace(email)
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	mine := make([]Order, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if strings.EqualFold(all[i].ShipTo.Email, email) {
			mine = append(mine, all[i])
		}
	}
	return mine, nil
}

func (s *service) Get(ctx context.Context, id string) (Order, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return Order{}, err
	}
	for _, order := range all {
		if order.ID == id {
			return order, nil
		}
	}
	return Order{}, errors.New(errors.CodeNotFound, fmt.Sprintf("order %q not found", id))
}
