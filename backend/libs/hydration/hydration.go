// Package hydration holds the daily-goal formula and the ahead/behind
// classification shared by the API and the device simulator.
package hydration

import "math"

// MLPerKilogram is the goal intake per kilogram of body weight.
const MLPerKilogram = 35

// DefaultWeightKg is used when no profile has been stored yet.
const DefaultWeightKg = 70

// Status values.
const (
	StatusAhead  = "ahead"
	StatusBehind = "behind"
)

// Prediction compares an intake total with the daily goal.
type Prediction struct {
	GoalML   int    `json:"goal_ml"`
	IntakeML int    `json:"intake_ml"`
	DeltaML  int    `json:"delta_ml"`
	Status   string `json:"status"`
}

// DailyGoalML returns round(weightKg * 35).
func DailyGoalML(weightKg int) int {
	return int(math.Round(float64(weightKg) * MLPerKilogram))
}

// Evaluate classifies intakeML against the goal for weightKg. Meeting the goal
// exactly counts as ahead.
func Evaluate(weightKg, intakeML int) Prediction {
	goal := DailyGoalML(weightKg)
	delta := intakeML - goal
	status := StatusBehind
	if delta >= 0 {
		status = StatusAhead
	}
	return Prediction{
		GoalML:   goal,
		IntakeML: intakeML,
		DeltaML:  delta,
		Status:   status,
	}
}

// Progress returns intake as a percentage of the goal, capped at 100.
func Progress(goalML, intakeML int) float64 {
	if goalML <= 0 {
		return 100
	}
	return math.Min(100, float64(intakeML)/float64(goalML)*100)
}
