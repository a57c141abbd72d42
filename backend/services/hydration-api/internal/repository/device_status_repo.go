package repository

import (
	"context"
	"database/sql"

	"hydrohero/backend/services/hydration-api/internal/models"
)

// DeviceStatusRepository stores the single local device status row.
type DeviceStatusRepository struct {
	db    *sql.DB
	clock Clock
}

// NewDeviceStatusRepository returns repository. A nil clock uses wall time.
func NewDeviceStatusRepository(db *sql.DB, clock Clock) *DeviceStatusRepository {
	return &DeviceStatusRepository{db: db, clock: clock}
}

// GetOrCreate returns the status row, inserting a disconnected one stamped
// with the current time when none exists.
func (r *DeviceStatusRepository) GetOrCreate(ctx context.Context) (*models.DeviceStatus, error) {
	const insert = `
		INSERT INTO device_status (id, connected, last_synced)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, insert, singletonID, false, r.clock.now()); err != nil {
		return nil, err
	}

	const query = `
		SELECT connected, last_synced
		FROM device_status
		WHERE id = $1
	`
	var status models.DeviceStatus
	if err := r.db.QueryRowContext(ctx, query, singletonID).Scan(&status.Connected, &status.LastSynced); err != nil {
		return nil, err
	}
	if status.LastSynced != nil {
		utc := status.LastSynced.UTC()
		status.LastSynced = &utc
	}
	return &status, nil
}
