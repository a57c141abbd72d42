package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hydrohero/backend/libs/hydration"
	"hydrohero/backend/services/hydration-api/internal/models"
	"hydrohero/backend/services/hydration-api/internal/repository"
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func newHydrationService(t *testing.T, now time.Time) (*HydrationService, *fakeProfiles, *fakeIntakes, *testClock) {
	t.Helper()
	clock := &testClock{now: now}
	profiles := &fakeProfiles{}
	intakes := &fakeIntakes{clock: clock.Now}
	svc := NewHydrationService(profiles, intakes, &fakeDeviceStatus{}, 0, clock.Now, zap.NewNop())
	return svc, profiles, intakes, clock
}

func TestProfileCreatesDefaultOnce(t *testing.T) {
	svc, profiles, _, _ := newHydrationService(t, time.Now().UTC())
	ctx := context.Background()

	first, err := svc.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, hydration.DefaultWeightKg, first.WeightKg)
	assert.Nil(t, first.Age)
	require.NotNil(t, first.ActivityLevel)
	assert.Equal(t, DefaultActivityLevel, *first.ActivityLevel)

	_, err = svc.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, profiles.upserts)
}

func TestProfilePropagatesStoreErrors(t *testing.T) {
	svc, profiles, _, _ := newHydrationService(t, time.Now().UTC())
	profiles.getErr = errors.New("db down")

	_, err := svc.Profile(context.Background())
	require.EqualError(t, err, "db down")
	assert.Zero(t, profiles.upserts)
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _, _ := newHydrationService(t, time.Now().UTC())
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, ProfileInput{WeightKg: 0})
	require.ErrorIs(t, err, ErrInvalidWeight)
	_, err = svc.UpdateProfile(ctx, ProfileInput{WeightKg: -5})
	require.ErrorIs(t, err, ErrInvalidWeight)

	level := "high"
	profile, err := svc.UpdateProfile(ctx, ProfileInput{WeightKg: 80, Age: intPtr(30), ActivityLevel: &level})
	require.NoError(t, err)
	assert.Equal(t, 80, profile.WeightKg)
	assert.Equal(t, 30, *profile.Age)
	assert.Equal(t, "high", *profile.ActivityLevel)
}

func TestLogIntakeRejectsNegative(t *testing.T) {
	svc, _, intakes, _ := newHydrationService(t, time.Now().UTC())

	_, err := svc.LogIntake(context.Background(), -1)
	require.ErrorIs(t, err, ErrInvalidIntake)
	assert.Empty(t, intakes.events)

	intakes.appendErr = repository.ErrNegativeIntake
	_, err = svc.LogIntake(context.Background(), 10)
	require.ErrorIs(t, err, ErrInvalidIntake)
}

func TestDailyTotalUsesUTCMidnight(t *testing.T) {
	yesterday := time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)
	svc, _, intakes, clock := newHydrationService(t, yesterday)
	ctx := context.Background()

	_, err := svc.LogIntake(ctx, 300)
	require.NoError(t, err)

	clock.now = time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	for _, ml := range []int{100, 250, 50} {
		_, err := svc.LogIntake(ctx, ml)
		require.NoError(t, err)
	}

	daily, err := svc.DailyTotal(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", daily.Date)
	assert.Equal(t, 400, daily.TotalML)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), intakes.sumSince)
}

func TestDailyTotalEmpty(t *testing.T) {
	svc, _, _, _ := newHydrationService(t, time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC))

	daily, err := svc.DailyTotal(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DailyIntake{Date: "2024-03-10", TotalML: 0}, *daily)
}

func TestStartOfDayUTCNormalizesZone(t *testing.T) {
	zone := time.FixedZone("UTC+3", 3*60*60)
	local := time.Date(2024, 3, 10, 1, 30, 0, 0, zone)

	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), StartOfDayUTC(local))
}

func TestHistoryUsesConfiguredLimit(t *testing.T) {
	clock := &testClock{now: time.Now().UTC()}
	intakes := &fakeIntakes{clock: clock.Now}
	svc := NewHydrationService(&fakeProfiles{}, intakes, &fakeDeviceStatus{}, 2, clock.Now, zap.NewNop())
	ctx := context.Background()

	for _, ml := range []int{1, 2, 3} {
		_, err := svc.LogIntake(ctx, ml)
		require.NoError(t, err)
	}

	events, err := svc.History(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 2, events[0].IntakeML)
	assert.Equal(t, 3, events[1].IntakeML)
	assert.Equal(t, 2, intakes.lastLimit)
}

func TestHistoryDefaultLimit(t *testing.T) {
	svc, _, intakes, _ := newHydrationService(t, time.Now().UTC())

	_, err := svc.History(context.Background())
	require.NoError(t, err)
	assert.Equal(t, repository.DefaultHistoryLimit, intakes.lastLimit)
}

func TestPrediction(t *testing.T) {
	svc, _, _, _ := newHydrationService(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, ProfileInput{WeightKg: 70})
	require.NoError(t, err)
	_, err = svc.LogIntake(ctx, 2450)
	require.NoError(t, err)

	prediction, err := svc.Prediction(ctx)
	require.NoError(t, err)
	assert.Equal(t, hydration.Prediction{GoalML: 2450, IntakeML: 2450, DeltaML: 0, Status: hydration.StatusAhead}, *prediction)
}

func TestPredictionWithoutProfileUsesDefault(t *testing.T) {
	svc, profiles, _, _ := newHydrationService(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))

	prediction, err := svc.Prediction(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2450, prediction.GoalML)
	assert.Equal(t, -2450, prediction.DeltaML)
	assert.Equal(t, hydration.StatusBehind, prediction.Status)
	assert.Equal(t, 1, profiles.upserts)
}

func TestDeviceStatus(t *testing.T) {
	synced := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	svc := NewHydrationService(&fakeProfiles{}, &fakeIntakes{}, &fakeDeviceStatus{
		status: models.DeviceStatus{Connected: false, LastSynced: &synced},
	}, 0, nil, zap.NewNop())

	status, err := svc.DeviceStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Equal(t, synced, *status.LastSynced)
}
