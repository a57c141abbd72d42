package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LastSeenStore remembers when each device last produced a usable reading.
type LastSeenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLastSeenStore returns redis-backed store.
func NewLastSeenStore(client *redis.Client, ttl time.Duration) *LastSeenStore {
	return &LastSeenStore{client: client, ttl: ttl}
}

func (s *LastSeenStore) key(deviceID string) string {
	return fmt.Sprintf("hydration:device:last_seen:%s", deviceID)
}

// Record stores at for the device, refreshing the TTL.
func (s *LastSeenStore) Record(ctx context.Context, deviceID string, at time.Time) error {
	return s.client.Set(ctx, s.key(deviceID), at.UTC().Format(time.RFC3339Nano), s.ttl).Err()
}

// LastSeen returns the recorded instant. ok is false when nothing is stored.
func (s *LastSeenStore) LastSeen(ctx context.Context, deviceID string) (time.Time, bool, error) {
	raw, err := s.client.Get(ctx, s.key(deviceID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	at, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("last seen: parse %q: %w", raw, err)
	}
	return at, true, nil
}
