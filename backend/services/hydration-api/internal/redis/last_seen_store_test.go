package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*LastSeenStore, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewLastSeenStore(client, ttl), srv
}

func TestLastSeenMissing(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	_, ok, err := store.LastSeen(context.Background(), "dev-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecordAndLastSeen(t *testing.T) {
	ctx := context.Background()
	store, srv := newTestStore(t, time.Hour)
	at := time.Date(2026, 10, 19, 12, 0, 0, 123, time.FixedZone("CEST", 2*3600))

	require.NoError(t, store.Record(ctx, "dev-1", at))

	got, ok, err := store.LastSeen(ctx, "dev-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Equal(at))
	assert.Equal(t, time.Hour, srv.TTL("hydration:device:last_seen:dev-1"))
}

func TestLastSeenExpires(t *testing.T) {
	ctx := context.Background()
	store, srv := newTestStore(t, time.Minute)

	require.NoError(t, store.Record(ctx, "dev-1", time.Now()))
	srv.FastForward(2 * time.Minute)

	_, ok, err := store.LastSeen(ctx, "dev-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLastSeenCorruptValue(t *testing.T) {
	store, srv := newTestStore(t, time.Hour)
	require.NoError(t, srv.Set("hydration:device:last_seen:dev-1", "yesterday"))

	_, _, err := store.LastSeen(context.Background(), "dev-1")
	require.Error(t, err)
}
