package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"hydrohero/backend/libs/hydration"
	"hydrohero/backend/services/hydration-api/internal/models"
	"hydrohero/backend/services/hydration-api/internal/repository"
)

// Profile defaults applied when no profile has been stored yet.
const (
	DefaultActivityLevel = "moderate"
	dayLayout            = "2006-01-02"
)

var (
	// ErrInvalidWeight rejects non-positive body weights.
	ErrInvalidWeight = errors.New("weight_kg must be greater than zero")
	// ErrInvalidIntake rejects negative intake amounts.
	ErrInvalidIntake = errors.New("intake_ml must not be negative")
)

// ProfileStore is the profile persistence contract.
type ProfileStore interface {
	Get(ctx context.Context) (*models.Profile, error)
	Upsert(ctx context.Context, weightKg int, age *int, activityLevel *string) (*models.Profile, error)
}

// IntakeLog is the intake event persistence contract.
type IntakeLog interface {
	Append(ctx context.Context, intakeML int) (*models.IntakeEvent, error)
	SumSince(ctx context.Context, start time.Time) (int, error)
	Recent(ctx context.Context, limit int) ([]models.IntakeEvent, error)
}

// DeviceStatusStore is the local device status contract.
type DeviceStatusStore interface {
	GetOrCreate(ctx context.Context) (*models.DeviceStatus, error)
}

// ProfileInput carries a profile update.
type ProfileInput struct {
	WeightKg      int
	Age           *int
	ActivityLevel *string
}

// HydrationService serves profile, intake and local prediction operations.
type HydrationService struct {
	profiles     ProfileStore
	intakes      IntakeLog
	deviceStatus DeviceStatusStore
	historyLimit int
	clock        func() time.Time
	logger       *zap.Logger
}

// NewHydrationService builds service. A nil clock uses wall time.
func NewHydrationService(
	profiles ProfileStore,
	intakes IntakeLog,
	deviceStatus DeviceStatusStore,
	historyLimit int,
	clock func() time.Time,
	logger *zap.Logger,
) *HydrationService {
	if historyLimit <= 0 {
		historyLimit = repository.DefaultHistoryLimit
	}
	return &HydrationService{
		profiles:     profiles,
		intakes:      intakes,
		deviceStatus: deviceStatus,
		historyLimit: historyLimit,
		clock:        clock,
		logger:       logger,
	}
}

func (s *HydrationService) now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock().UTC()
}

// StartOfDayUTC returns midnight UTC of t's UTC date.
func StartOfDayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Profile returns the stored profile, creating the default one on first use.
func (s *HydrationService) Profile(ctx context.Context) (*models.Profile, error) {
	profile, err := s.profiles.Get(ctx)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, err
	}

	level := DefaultActivityLevel
	profile, err = s.profiles.Upsert(ctx, hydration.DefaultWeightKg, nil, &level)
	if err != nil {
		return nil, err
	}
	s.logger.Info("created default profile", zap.Int("weight_kg", profile.WeightKg))
	return profile, nil
}

// UpdateProfile replaces the stored profile.
func (s *HydrationService) UpdateProfile(ctx context.Context, input ProfileInput) (*models.Profile, error) {
	if input.WeightKg <= 0 {
		return nil, ErrInvalidWeight
	}
	profile, err := s.profiles.Upsert(ctx, input.WeightKg, input.Age, input.ActivityLevel)
	if err != nil {
		return nil, err
	}
	s.logger.Info("profile updated", zap.Int("weight_kg", profile.WeightKg))
	return profile, nil
}

// LogIntake appends one intake event.
func (s *HydrationService) LogIntake(ctx context.Context, intakeML int) (*models.IntakeEvent, error) {
	if intakeML < 0 {
		return nil, ErrInvalidIntake
	}
	event, err := s.intakes.Append(ctx, intakeML)
	if err != nil {
		if errors.Is(err, repository.ErrNegativeIntake) {
			return nil, ErrInvalidIntake
		}
		return nil, err
	}
	s.logger.Debug("intake logged", zap.Int64("id", event.ID), zap.Int("intake_ml", event.IntakeML))
	return event, nil
}

// DailyTotal sums today's intake, today being the current UTC calendar day.
func (s *HydrationService) DailyTotal(ctx context.Context) (*models.DailyIntake, error) {
	now := s.now()
	total, err := s.intakes.SumSince(ctx, StartOfDayUTC(now))
	if err != nil {
		return nil, err
	}
	return &models.DailyIntake{Date: now.Format(dayLayout), TotalML: total}, nil
}

// History returns the most recent events, oldest first.
func (s *HydrationService) History(ctx context.Context) ([]models.IntakeEvent, error) {
	return s.intakes.Recent(ctx, s.historyLimit)
}

// Prediction evaluates today's local total against the profile goal.
func (s *HydrationService) Prediction(ctx context.Context) (*hydration.Prediction, error) {
	profile, err := s.Profile(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.intakes.SumSince(ctx, StartOfDayUTC(s.now()))
	if err != nil {
		return nil, err
	}
	prediction := hydration.Evaluate(profile.WeightKg, total)
	return &prediction, nil
}

// DeviceStatus returns the local device bookkeeping row.
func (s *HydrationService) DeviceStatus(ctx context.Context) (*models.DeviceStatus, error) {
	return s.deviceStatus.GetOrCreate(ctx)
}
