package models

import "time"

// IntakeEvent is one logged drink.
type IntakeEvent struct {
	ID        int64     `db:"id" json:"id"`
	Timestamp time.Time `db:"recorded_at" json:"timestamp"`
	IntakeML  int       `db:"intake_ml" json:"intake_ml"`
}

// DailyIntake is today's accumulated total.
type DailyIntake struct {
	Date    string `json:"date"`
	TotalML int    `json:"total_ml"`
}
