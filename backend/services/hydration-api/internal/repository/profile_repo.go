package repository

import (
	"context"
	"database/sql"
	"errors"

	"hydrohero/backend/services/hydration-api/internal/models"
)

// singletonID is the only primary key the profile and device status tables accept.
const singletonID = 1

// ErrProfileNotFound represents a missing profile row.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository stores the single user profile.
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository returns repository.
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Get returns the stored profile or ErrProfileNotFound.
func (r *ProfileRepository) Get(ctx context.Context) (*models.Profile, error) {
	const query = `
		SELECT id, weight_kg, age, activity_level
		FROM user_profiles
		WHERE id = $1
	`
	var p models.Profile
	err := r.db.QueryRowContext(ctx, query, singletonID).Scan(&p.ID, &p.WeightKg, &p.Age, &p.ActivityLevel)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Upsert creates the profile or overwrites every field of the existing one,
// then returns the row as stored.
func (r *ProfileRepository) Upsert(ctx context.Context, weightKg int, age *int, activityLevel *string) (*models.Profile, error) {
	const query = `
		INSERT INTO user_profiles (id, weight_kg, age, activity_level)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			weight_kg = EXCLUDED.weight_kg,
			age = EXCLUDED.age,
			activity_level = EXCLUDED.activity_level
	`
	if _, err := r.db.ExecContext(ctx, query, singletonID, weightKg, age, activityLevel); err != nil {
		return nil, err
	}
	return r.Get(ctx)
}
