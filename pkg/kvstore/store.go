package kvstore

import "context"

// Keys for the persisted storefront state. Each key holds one whole JSON
// value; the full value is the unit of persistence, never a partial write.
const (
	KeyCart      = "cart"
	KeyOrders    = "orders"
	KeyUser      = "user"
	KeyUsers     = "users"
	KeyAddresses = "addresses"
	KeyWishlist  = "wishlist"
)

// Store is the key-value persistence surface consumed by the domain
// repositories. Get reports false when the key is absent; Remove of an
// absent key is a no-op.
type Store interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Remove(ctx context.Context, key string) error
}

// TxStore adds an all-or-nothing write boundary: every Set/Remove issued
// through the Store passed to fn lands atomically, or not at all.
type TxStore interface {
	Store
	WithTx(ctx context.Context, fn func(Store) error) error
}
