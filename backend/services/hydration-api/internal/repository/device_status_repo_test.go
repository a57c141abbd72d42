package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceStatusCreatedLazily(t *testing.T) {
	ctx := context.Background()
	sqlDB := newTestDB(t)
	created := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	clock := newStepClock(created, time.Hour)
	repo := NewDeviceStatusRepository(sqlDB, clock.Now)

	status, err := repo.GetOrCreate(ctx)
	require.NoError(t, err)
	assert.False(t, status.Connected)
	require.NotNil(t, status.LastSynced)
	assert.True(t, status.LastSynced.Equal(created))

	again, err := repo.GetOrCreate(ctx)
	require.NoError(t, err)
	assert.True(t, again.LastSynced.Equal(created), "second read must not restamp the row")

	var count int
	require.NoError(t, sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM device_status`).Scan(&count))
	assert.Equal(t, 1, count)
}
