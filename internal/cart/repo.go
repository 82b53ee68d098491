package cart

import (
	"context"

	"github.com/handloomhouse/storefront-backend/pkg/kvstore"
)

// Repo persists the cart line list as one whole value under the cart key.
type Repo interface {
	Lines(ctx context.Context) ([]Line, error)
	Save(ctx context.Context, lines []Line) error
	Clear(ctx context.Context) error
	WithStore(store kvstore.Store) Repo
}

type repo struct {
	store kvstore.Store
}

// NewRepo builds a cart repository over the provided store.
func NewRepo(store kvstore.Store) Repo {
	return &repo{store: store}
}

// WithStore returns a clone bound to the given store, typically a
// transaction-scoped one.
func (r *repo) WithStore(store kvstore.Store) Repo {
	if store == nil {
		return r
	}
	return &repo{store: store}
}

func (r *repo) Lines(ctx context.Context) ([]Line, error) {
	var lines []Line
	found, err := r.store.Get(ctx, kvstore.KeyCart, &lines)
	if err != nil {
		return nil, err
	}
	if !found {
		return []Line{}, nil
	}
	return lines, nil
}

func (r *repo) Save(ctx context.Context, lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	return r.store.Set(ctx, kvstore.KeyCart, lines)
}

func (r *repo) Clear(ctx context.Context) error {
	return r.store.Set(ctx, kvstore.KeyCart, []Line{})
}
