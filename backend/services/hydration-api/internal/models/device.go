package models

import (
	"encoding/json"
	"time"
)

// DeviceStatus is the local device bookkeeping row.
type DeviceStatus struct {
	Connected  bool       `db:"connected" json:"connected"`
	LastSynced *time.Time `db:"last_synced" json:"last_synced"`
}

// DeviceReading is the latest document reported by a bottle scale. The Has*
// flags record field presence, the pointers hold the integer value when the
// field could be coerced.
type DeviceReading struct {
	CurrentWeightG    *int
	TotalWaterDrunkML *int
	HasCurrentWeight  bool
	HasTotalWater     bool
	Raw               json.RawMessage
}

// Connected reports whether the document carries at least one known field.
func (r *DeviceReading) Connected() bool {
	return r != nil && (r.HasCurrentWeight || r.HasTotalWater)
}

// DeviceSnapshot is the status summary served for a remote device.
type DeviceSnapshot struct {
	Connected       bool            `json:"connected"`
	CurrentWeight   *int            `json:"currentWeight"`
	TotalWaterDrank *int            `json:"totalWaterDrank"`
	LastUpdated     *time.Time      `json:"lastUpdated"`
	Error           string          `json:"error,omitempty"`
	RawData         json.RawMessage `json:"rawData,omitempty"`
	LastSeen        *time.Time      `json:"lastSeen,omitempty"`
}

// HydrationData is the strict remote snapshot; both fields are required.
type HydrationData struct {
	CurrentWeight   int       `json:"currentWeight"`
	TotalWaterDrank int       `json:"totalWaterDrank"`
	Connected       bool      `json:"connected"`
	LastUpdated     time.Time `json:"lastUpdated"`
}

// RemoteIntake is the cumulative intake reported by a device.
type RemoteIntake struct {
	IntakeML  int       `json:"intake_ml"`
	Timestamp time.Time `json:"timestamp"`
}
