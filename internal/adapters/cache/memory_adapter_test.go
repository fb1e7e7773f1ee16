package cache

import (
	"context"
	"testing"
	"time"

	"github.com/sportzone/backend/internal/domain/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAdapter_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryAdapter()

	_, err := c.Get(ctx, "payment_session:BK-1")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "payment_session:BK-1", []byte(`{"state":"session_open"}`), 60))

	value, err := c.Get(ctx, "payment_session:BK-1")
	require.NoError(t, err)
	assert.Equal(t, `{"state":"session_open"}`, string(value))

	exists, err := c.Exists(ctx, "payment_session:BK-1")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, c.Delete(ctx, "payment_session:BK-1"))
	exists, _ = c.Exists(ctx, "payment_session:BK-1")
	assert.False(t, exists)
}

func TestMemoryAdapter_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryAdapter()
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 30))

	now = now.Add(29 * time.Second)
	_, err := c.Get(ctx, "k")
	assert.NoError(t, err)

	now = now.Add(time.Second)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)
}

func TestMemoryAdapter_SetNX(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryAdapter()

	ok, err := c.SetNX(ctx, "lock", []byte("1"), 10)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.SetNX(ctx, "lock", []byte("2"), 10)
	require.NoError(t, err)
	assert.False(t, ok)

	value, _ := c.Get(ctx, "lock")
	assert.Equal(t, "1", string(value))
}
