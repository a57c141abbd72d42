// Package simulator models a smart water bottle that reports its scale
// readings to the realtime database.
package simulator

import (
	"math"
	"math/rand/v2"
	"time"

	"hydrohero/backend/libs/hydration"
)

// Document field names, matching what the bottle firmware writes.
const (
	FieldCurrentWeight   = "currentWeight"
	FieldTotalWaterDrank = "totalWaterDrank"
	FieldTimestamp       = "timestamp"
	FieldGoalReached     = "goalReached"
	FieldDeviceStatus    = "deviceStatus"
	FieldBatteryLevel    = "batteryLevel"
	FieldTemperature     = "temperature"
)

// DefaultStartWeightG is the weight of a freshly filled bottle.
const DefaultStartWeightG = 500

// Bottle is the simulated device state.
type Bottle struct {
	WeightG int
	TotalML int
	GoalML  int
}

// GoalReached reports whether the cumulative intake met the goal.
func (b *Bottle) GoalReached() bool {
	return b.TotalML >= b.GoalML
}

// Remaining is the intake still needed to reach the goal, never negative.
func (b *Bottle) Remaining() int {
	return max(b.GoalML-b.TotalML, 0)
}

// Progress is the goal completion percentage, capped at 100.
func (b *Bottle) Progress() float64 {
	return hydration.Progress(b.GoalML, b.TotalML)
}

// Sip drinks up to ml, clamped to the remaining goal. The bottle never weighs
// less than zero. It returns the amount actually drunk.
func (b *Bottle) Sip(ml int) int {
	if ml <= 0 || b.GoalReached() {
		return 0
	}
	ml = min(ml, b.Remaining())
	b.TotalML += ml
	b.WeightG = max(b.WeightG-ml, 0)
	return ml
}

// Document renders the state as the flat JSON object PUT to the device path.
// With extras the battery and temperature sensors are simulated too.
func (b *Bottle) Document(now time.Time, extras bool, rng *rand.Rand) map[string]any {
	doc := map[string]any{
		FieldCurrentWeight:   b.WeightG,
		FieldTotalWaterDrank: b.TotalML,
		FieldTimestamp:       now.UTC().Format(time.RFC3339),
		FieldGoalReached:     b.GoalReached(),
	}
	if extras {
		doc[FieldDeviceStatus] = "active"
		doc[FieldBatteryLevel] = 75 + rng.IntN(26)
		doc[FieldTemperature] = math.Round((20+rng.Float64()*5)*10) / 10
	}
	return doc
}
