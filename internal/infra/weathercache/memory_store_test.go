package weathercache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "cwa:F-C0032-001")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, "cwa:F-C0032-001", []byte(`{"success":"true"}`), time.Minute))
	payload, ok, err := store.Get(ctx, "cwa:F-C0032-001")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"success":"true"}`, string(payload))
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Nanosecond))
	time.Sleep(5 * time.Millisecond)
	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreZeroTTLNeverExpires(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 0))
	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
}
