package models

// Profile is the single stored body profile used to derive the daily goal.
type Profile struct {
	ID            int64   `db:"id" json:"id"`
	WeightKg      int     `db:"weight_kg" json:"weight_kg"`
	Age           *int    `db:"age" json:"age"`
	ActivityLevel *string `db:"activity_level" json:"activity_level"`
}
