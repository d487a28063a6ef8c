package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bank-vaults/scoped-storage/pkg/apis/v1alpha1"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	store := New(0)

	for _, key := range []string{"c", "a", "b"} {
		require.NoError(t, store.SetItem(ctx, key, "value-"+key))
	}

	value, ok, err := store.GetItem(ctx, "a")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value-a", value)

	_, ok, err = store.GetItem(ctx, "missing")
	assert.NoError(t, err)
	assert.False(t, ok)

	// Overwrite keeps position
	require.NoError(t, store.SetItem(ctx, "c", "updated"))

	keys, err := store.Keys(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, keys)

	assert.NoError(t, store.RemoveItem(ctx, "a"))
	assert.NoError(t, store.RemoveItem(ctx, "missing"))

	keys, err = store.Keys(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, keys)
}

func TestStoreQuota(t *testing.T) {
	ctx := context.Background()
	store := New(10)

	assert.NoError(t, store.SetItem(ctx, "k", "123456789")) // 10 bytes
	assert.ErrorIs(t, store.SetItem(ctx, "j", ""), v1alpha1.ErrQuotaExceeded)

	// Shrinking an existing value frees space
	assert.NoError(t, store.SetItem(ctx, "k", "1"))
	assert.NoError(t, store.SetItem(ctx, "j", "1"))

	// Removing frees space
	assert.NoError(t, store.RemoveItem(ctx, "k"))
	assert.NoError(t, store.SetItem(ctx, "l", "1234567"))
}

func TestProviderValidate(t *testing.T) {
	provider := &Provider{}

	assert.Error(t, provider.Validate(v1alpha1.BackendSpec{}))
	assert.Error(t, provider.Validate(v1alpha1.BackendSpec{Memory: &v1alpha1.BackendMemory{QuotaBytes: -1}}))
	assert.NoError(t, provider.Validate(v1alpha1.BackendSpec{Memory: &v1alpha1.BackendMemory{}}))
}
