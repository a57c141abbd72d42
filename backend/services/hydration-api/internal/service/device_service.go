package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"hydrohero/backend/libs/hydration"
	"hydrohero/backend/services/hydration-api/internal/models"
)

var (
	// ErrIncompleteReading means the device document lacks a required field.
	ErrIncompleteReading = errors.New("device reading incomplete")
	// ErrNoRemoteIntake means no cumulative intake could be read for the device.
	ErrNoRemoteIntake = errors.New("no intake data available for device")
)

// TelemetryGateway is the remote device reader contract.
type TelemetryGateway interface {
	Fetch(ctx context.Context, deviceID string) *models.DeviceReading
	TotalConsumed(ctx context.Context, deviceID string) (int, bool)
	StatusSummary(ctx context.Context, deviceID string) models.DeviceSnapshot
}

// ProfileProvider resolves the profile used for remote predictions.
type ProfileProvider interface {
	Profile(ctx context.Context) (*models.Profile, error)
}

// DeviceService serves remote device operations.
type DeviceService struct {
	gateway  TelemetryGateway
	profiles ProfileProvider
	clock    func() time.Time
	logger   *zap.Logger
}

// NewDeviceService builds service. A nil clock uses wall time.
func NewDeviceService(gateway TelemetryGateway, profiles ProfileProvider, clock func() time.Time, logger *zap.Logger) *DeviceService {
	return &DeviceService{
		gateway:  gateway,
		profiles: profiles,
		clock:    clock,
		logger:   logger,
	}
}

func (s *DeviceService) now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock().UTC()
}

// Snapshot returns the best-effort status summary for deviceID.
func (s *DeviceService) Snapshot(ctx context.Context, deviceID string) models.DeviceSnapshot {
	return s.gateway.StatusSummary(ctx, deviceID)
}

// Hydration returns the strict snapshot; both weight and intake must be present.
func (s *DeviceService) Hydration(ctx context.Context, deviceID string) (*models.HydrationData, error) {
	reading := s.gateway.Fetch(ctx, deviceID)
	if reading == nil || reading.CurrentWeightG == nil || reading.TotalWaterDrunkML == nil {
		return nil, ErrIncompleteReading
	}
	return &models.HydrationData{
		CurrentWeight:   *reading.CurrentWeightG,
		TotalWaterDrank: *reading.TotalWaterDrunkML,
		Connected:       true,
		LastUpdated:     s.now(),
	}, nil
}

// Intake returns the device's cumulative intake.
func (s *DeviceService) Intake(ctx context.Context, deviceID string) (*models.RemoteIntake, error) {
	total, ok := s.gateway.TotalConsumed(ctx, deviceID)
	if !ok {
		return nil, ErrNoRemoteIntake
	}
	return &models.RemoteIntake{IntakeML: total, Timestamp: s.now()}, nil
}

// Prediction evaluates the device's cumulative intake against the profile goal.
func (s *DeviceService) Prediction(ctx context.Context, deviceID string) (*hydration.Prediction, error) {
	total, ok := s.gateway.TotalConsumed(ctx, deviceID)
	if !ok {
		return nil, ErrNoRemoteIntake
	}
	profile, err := s.profiles.Profile(ctx)
	if err != nil {
		return nil, err
	}
	prediction := hydration.Evaluate(profile.WeightKg, total)
	s.logger.Debug("remote prediction",
		zap.String("device_id", deviceID),
		zap.Int("intake_ml", total),
		zap.String("status", prediction.Status),
	)
	return &prediction, nil
}
