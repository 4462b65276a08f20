package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnreadIncrementAndReset(t *testing.T) {
	_, cache := newTestCache(t)
	u := NewUnread(cache)
	ctx := context.Background()

	require.NoError(t, u.Increment(ctx, 5, 10))
	require.NoError(t, u.Increment(ctx, 5, 10))
	require.NoError(t, u.Increment(ctx, 5, 20))

	n, err := u.Get(ctx, 5, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, u.Reset(ctx, 5, 10))

	n, err = u.Get(ctx, 5, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	// The counterpart's counter is untouched by the reset.
	n, err = u.Get(ctx, 5, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestUnreadMissingCounterReadsZero(t *testing.T) {
	_, cache := newTestCache(t)
	u := NewUnread(cache)

	n, err := u.Get(context.Background(), 5, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
