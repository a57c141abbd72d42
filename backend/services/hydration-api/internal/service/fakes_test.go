package service

import (
	"context"
	"time"

	"hydrohero/backend/services/hydration-api/internal/models"
	"hydrohero/backend/services/hydration-api/internal/repository"
)

type fakeProfiles struct {
	profile   *models.Profile
	getErr    error
	upsertErr error
	upserts   int
}

func (f *fakeProfiles) Get(context.Context) (*models.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.profile == nil {
		return nil, repository.ErrProfileNotFound
	}
	return f.profile, nil
}

func (f *fakeProfiles) Upsert(_ context.Context, weightKg int, age *int, level *string) (*models.Profile, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	f.upserts++
	f.profile = &models.Profile{ID: 1, WeightKg: weightKg, Age: age, ActivityLevel: level}
	return f.profile, nil
}

type fakeIntakes struct {
	events    []models.IntakeEvent
	clock     func() time.Time
	sumSince  time.Time
	lastLimit int
	appendErr error
}

func (f *fakeIntakes) Append(_ context.Context, intakeML int) (*models.IntakeEvent, error) {
	if f.appendErr != nil {
		return nil, f.appendErr
	}
	event := models.IntakeEvent{ID: int64(len(f.events) + 1), Timestamp: f.clock(), IntakeML: intakeML}
	f.events = append(f.events, event)
	return &event, nil
}

func (f *fakeIntakes) SumSince(_ context.Context, start time.Time) (int, error) {
	f.sumSince = start
	total := 0
	for _, e := range f.events {
		if !e.Timestamp.Before(start) {
			total += e.IntakeML
		}
	}
	return total, nil
}

func (f *fakeIntakes) Recent(_ context.Context, limit int) ([]models.IntakeEvent, error) {
	f.lastLimit = limit
	if len(f.events) <= limit {
		return f.events, nil
	}
	return f.events[len(f.events)-limit:], nil
}

type fakeDeviceStatus struct {
	status models.DeviceStatus
}

func (f *fakeDeviceStatus) GetOrCreate(context.Context) (*models.DeviceStatus, error) {
	return &f.status, nil
}

type fakeGateway struct {
	reading  *models.DeviceReading
	snapshot models.DeviceSnapshot
}

func (f *fakeGateway) Fetch(context.Context, string) *models.DeviceReading {
	return f.reading
}

func (f *fakeGateway) TotalConsumed(context.Context, string) (int, bool) {
	if f.reading == nil || f.reading.TotalWaterDrunkML == nil {
		return 0, false
	}
	return *f.reading.TotalWaterDrunkML, true
}

func (f *fakeGateway) StatusSummary(context.Context, string) models.DeviceSnapshot {
	return f.snapshot
}

func intPtr(v int) *int { return &v }
