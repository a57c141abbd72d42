package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	libdb "hydrohero/backend/libs/db"
	hydrationdb "hydrohero/backend/services/hydration-api/internal/db"
)

// newTestDB opens a migrated SQLite database in a temp dir.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	sqlDB, err := hydrationdb.Open(context.Background(), libdb.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return sqlDB
}

// stepClock returns start, start+step, start+2*step, ...
type stepClock struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

func newStepClock(start time.Time, step time.Duration) *stepClock {
	return &stepClock{next: start, step: step}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(c.step)
	return now
}

func (c *stepClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next = t
}
