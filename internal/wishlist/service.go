package wishlist

import (
	"context"
	"fmt"

	"github.com/handloomhouse/storefront-backend/internal/catalog"
	"github.com/handloomhouse/storefront-backend/pkg/kvstore"
	"github.com/handloomhouse/storefront-backend/pkg/logger"
)

// Service keeps the saved-for-later product list. The whole id list is
// persisted under the wishlist key on every mutation.
type Service interface {
	List(ctx context.Context) ([]catalog.Product, error)
	Add(ctx context.Context, productID string) error
	Remove(ctx context.Context, productID string) error
}

// ServiceParams wires the wishlist service dependencies.
type ServiceParams struct {
	Store   kvstore.Store
	Catalog catalog.Service
	Logger  *logger.Logger
}

type service struct {
	store   kvstore.Store
	catalog catalog.Service
	logg    *logger.Logger
}

// NewService validates the wiring and returns the wishlist service.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog service is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{store: params.Store, catalog: params.Catalog, logg: params.Logger}, nil
}

func (s *service) ids(ctx context.Context) ([]string, error) {
	var ids []string
	found, err := s.store.Get(ctx, kvstore.KeyWishlist, &ids)
	if err != nil {
		return nil, err
	}
	if !found {
		return []string{}, nil
	}
	return ids, nil
}

// List joins the saved ids against the catalog. Ids whose product no longer
// exists are skipped.
func (s *service) List(ctx context.Context) ([]catalog.Product, error) {
	ids, err := s.ids(ctx)
	if err != nil {
		return nil, err
	}
	products := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		product, err := s.catalog.GetByID(id)
		if err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "product_id", id), "wishlist references unknown product")
			continue
		}
		products = append(products, product)
	}
	return products, nil
}

// Add saves a product id. Adding an already saved product is a no-op.
func (s *service) Add(ctx context.Context, productID string) error {
	if _, err := s.catalog.GetByID(productID); err != nil {
		return err
	}
	ids, err := s.ids(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == productID {
			return nil
		}
	}
	return s.store.Set(ctx, kvstore.KeyWishlist, append(ids, productID))
}

// Remove drops a product id. Removing an absent id is a no-op.
func (s *service) Remove(ctx context.Context, productID string) error {
	ids, err := s.ids(ctx)
	if err != nil {
		return err
	}
	next := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != productID {
			next = append(next, id)
		}
	}
	return s.store.Set(ctx, kvstore.KeyWishlist, next)
}
