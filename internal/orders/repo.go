package orders

import (
	"context"

	"github.com/handloomhouse/storefront-backend/pkg/kvstore"
)

// Repo persists the order log as one whole value under the orders key.
type Repo interface {
	All(ctx context.Context) ([]Order, error)
	Save(ctx context.Context, orders []Order) error
	WithStore(store kvstore.Store) Repo
}

type repo struct {
	store kvstore.Store
}

// NewRepo builds an order repository over the provided store.
func NewRepo(store kvstore.Store) Repo {
	return &repo{store: store}
}

func (r *repo) WithStore(store kvstore.Store) Repo {
	if store == nil {
		return r
	}
	return &repo{store: store}
}

func (r *repo) All(ctx context.Context) ([]Order, error) {
	var all []Order
	found, err := r.store.Get(ctx, kvstore.KeyOrders, &all)
	if err != nil {
		return nil, err
	}
	if !found {
		return []Order{}, nil
	}
	return all, nil
}

func (r *repo) Save(ctx context.Context, orders []Order) error {
	if orders == nil {
		orders = []Order{}
	}
	return r.store.Set(ctx, kvstore.KeyOrders, orders)
}
