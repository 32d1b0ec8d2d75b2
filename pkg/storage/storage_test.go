package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func testStoreRoundTrip(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "foodhub_cart")
	require.NoError(t, err)
	require.False(t, ok, "fresh store should miss")

	require.NoError(t, store.Set(ctx, "foodhub_cart", `{"items":[]}`))

	value, ok, err := store.Get(ctx, "foodhub_cart")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"items":[]}`, value)

	require.NoError(t, store.Set(ctx, "foodhub_cart", `{"items":[{"itemId":"m1"}]}`))
	value, ok, err = store.Get(ctx, "foodhub_cart")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"items":[{"itemId":"m1"}]}`, value, "second write should win")

	require.NoError(t, store.Delete(ctx, "foodhub_cart"))
	_, ok, err = store.Get(ctx, "foodhub_cart")
	require.NoError(t, err)
	require.False(t, ok, "deleted key should miss")

	require.NoError(t, store.Delete(ctx, "foodhub_cart"), "delete should be idempotent")
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	defer store.Close()
	testStoreRoundTrip(t, store)
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLite("file::memory:?cache=shared")
	require.NoError(t, err)
	defer store.Close()
	testStoreRoundTrip(t, store)
}

func TestSQLiteRequiresPath(t *testing.T) {
	t.Parallel()

	_, err := NewSQLite("")
	require.Error(t, err)
}

func TestMemoryIsolatedKeys(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := NewMemory()
	require.NoError(t, store.Set(ctx, "foodhub_cart", "a"))
	require.NoError(t, store.Set(ctx, "foodhub_orders", "b"))

	value, ok, err := store.Get(ctx, "foodhub_orders")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "b", value)

	require.NoError(t, store.Delete(ctx, "foodhub_cart"))
	_, ok, _ = store.Get(ctx, "foodhub_orders")
	require.True(t, ok, "deleting one key must not touch another")
}
