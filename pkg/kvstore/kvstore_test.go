package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fixtureLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func setupGormStore(t *testing.T) *GormStore {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	store := NewGormStore(db)
	require.NoError(t, store.AutoMigrate(context.Background()))
	return store
}

func TestGormStoreRoundTrip(t *testing.T) {
	store := setupGormStore(t)
	ctx := context.Background()

	var lines []fixtureLine
	found, err := store.Get(ctx, KeyCart, &lines)
	require.NoError(t, err)
	assert.False(t, found, "fresh store has no cart key")

	want := []fixtureLine{{ProductID: "hl-001", Quantity: 2}, {ProductID: "hl-004", Quantity: 1}}
	require.NoError(t, store.Set(ctx, KeyCart, want))

	found, err = store.Get(ctx, KeyCart, &lines)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, want, lines)

	// Set is a whole-value overwrite, not a merge.
	require.NoError(t, store.Set(ctx, KeyCart, []fixtureLine{{ProductID: "hl-001", Quantity: 5}}))
	found, err = store.Get(ctx, KeyCart, &lines)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestGormStoreRemoveAbsentIsNoop(t *testing.T) {
	store := setupGormStore(t)
	ctx := context.Background()

	require.NoError(t, store.Remove(ctx, KeyUser))

	require.NoError(t, store.Set(ctx, KeyUser, map[string]string{"email": "meera@example.com"}))
	require.NoError(t, store.Remove(ctx, KeyUser))

	var session map[string]string
	found, err := store.Get(ctx, KeyUser, &session)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGormStoreWithTxRollsBackOnError(t *testing.T) {
	store := setupGormStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyOrders, []string{"ord-1"}))

	boom := errors.New("append failed")
	err := store.WithTx(ctx, func(tx Store) error {
		if err := tx.Set(ctx, KeyOrders, []string{"ord-1", "ord-2"}); err != nil {
			return err
		}
		if err := tx.Set(ctx, KeyCart, []fixtureLine{}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var orders []string
	found, err := store.Get(ctx, KeyOrders, &orders)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"ord-1"}, orders, "rolled-back write must not land")

	var lines []fixtureLine
	found, err = store.Get(ctx, KeyCart, &lines)
	require.NoError(t, err)
	assert.False(t, found, "rolled-back cart write must not land")
}

func TestGormStoreWithTxCommitsBothWrites(t *testing.T) {
	store := setupGormStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyCart, []fixtureLine{{ProductID: "hl-002", Quantity: 1}}))

	err := store.WithTx(ctx, func(tx Store) error {
		if err := tx.Set(ctx, KeyOrders, []string{"ord-1"}); err != nil {
			return err
		}
		return tx.Set(ctx, KeyCart, []fixtureLine{})
	})
	require.NoError(t, err)

	var orders []string
	found, err := store.Get(ctx, KeyOrders, &orders)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"ord-1"}, orders)

	var lines []fixtureLine
	found, err = store.Get(ctx, KeyCart, &lines)
	require.NoError(t, err)
	require.True(t, found)
	assert.Empty(t, lines)
}

func TestMemoryStoreTxSnapshotSemantics(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyWishlist, []string{"hl-003"}))

	boom := errors.New("nope")
	err := store.WithTx(ctx, func(tx Store) error {
		if err := tx.Set(ctx, KeyWishlist, []string{}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var ids []string
	found, err := store.Get(ctx, KeyWishlist, &ids)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"hl-003"}, ids)

	require.NoError(t, store.WithTx(ctx, func(tx Store) error {
		return tx.Remove(ctx, KeyWishlist)
	}))
	found, err = store.Get(ctx, KeyWishlist, &ids)
	require.NoError(t, err)
	assert.False(t, found)
}
