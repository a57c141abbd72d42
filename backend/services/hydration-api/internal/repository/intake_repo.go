package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hydrohero/backend/services/hydration-api/internal/models"
)

// DefaultHistoryLimit bounds Recent when no positive limit is given.
const DefaultHistoryLimit = 500

// ErrNegativeIntake is returned for intake amounts below zero.
var ErrNegativeIntake = errors.New("intake_ml must not be negative")

// IntakeRepository is the append-only intake event log.
type IntakeRepository struct {
	db    *sql.DB
	clock Clock
}

// NewIntakeRepository returns repository. A nil clock uses wall time.
func NewIntakeRepository(db *sql.DB, clock Clock) *IntakeRepository {
	return &IntakeRepository{db: db, clock: clock}
}

// Append records one event stamped with the current UTC time.
func (r *IntakeRepository) Append(ctx context.Context, intakeML int) (*models.IntakeEvent, error) {
	if intakeML < 0 {
		return nil, ErrNegativeIntake
	}
	event := &models.IntakeEvent{
		Timestamp: r.clock.now(),
		IntakeML:  intakeML,
	}
	const query = `
		INSERT INTO intake_events (recorded_at, intake_ml)
		VALUES ($1, $2)
		RETURNING id
	`
	if err := r.db.QueryRowContext(ctx, query, event.Timestamp, event.IntakeML).Scan(&event.ID); err != nil {
		return nil, err
	}
	return event, nil
}

// SumSince returns the total intake of events at or after start, 0 when none match.
func (r *IntakeRepository) SumSince(ctx context.Context, start time.Time) (int, error) {
	const query = `
		SELECT COALESCE(SUM(intake_ml), 0)
		FROM intake_events
		WHERE recorded_at >= $1
	`
	var total int64
	if err := r.db.QueryRowContext(ctx, query, start.UTC()).Scan(&total); err != nil {
		return 0, err
	}
	return int(total), nil
}

// Recent returns up to limit of the newest events, oldest first.
func (r *IntakeRepository) Recent(ctx context.Context, limit int) ([]models.IntakeEvent, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	const query = `
		SELECT id, recorded_at, intake_ml
		FROM intake_events
		ORDER BY recorded_at DESC, id DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]models.IntakeEvent, 0, limit)
	for rows.Next() {
		var e models.IntakeEvent
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.IntakeML); err != nil {
			return nil, err
		}
		e.Timestamp = e.Timestamp.UTC()
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	return events, nil
}
