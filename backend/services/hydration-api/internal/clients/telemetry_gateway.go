package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"hydrohero/backend/libs/rtdb"
	"hydrohero/backend/services/hydration-api/internal/models"
)

// Field names written by the bottle firmware.
const (
	FieldCurrentWeight   = "currentWeight"
	FieldTotalWaterDrank = "totalWaterDrank"
)

// Snapshot error messages.
const (
	ErrMsgNoData     = "No data available"
	ErrMsgNoFields   = "Device document has no telemetry fields"
	defaultTimeout   = 10 * time.Second
	lastSeenDeadline = 2 * time.Second
)

// DocumentReader is the subset of rtdb.Client used by the gateway.
type DocumentReader interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
}

// LastSeenRecorder tracks when a device last produced a usable reading.
type LastSeenRecorder interface {
	Record(ctx context.Context, deviceID string, at time.Time) error
	LastSeen(ctx context.Context, deviceID string) (time.Time, bool, error)
}

// GatewayOptions configures TelemetryGateway. An empty BaseURL disables remote
// reads: every fetch reports absence.
type GatewayOptions struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient rtdb.HTTPDoer
	LastSeen   LastSeenRecorder
	Clock      func() time.Time
}

// TelemetryGateway reads device documents from the realtime database. It never
// returns errors: transport, status and decode failures are logged and turned
// into absence.
type TelemetryGateway struct {
	reader   DocumentReader
	lastSeen LastSeenRecorder
	timeout  time.Duration
	clock    func() time.Time
	logger   *zap.Logger
}

// NewTelemetryGateway builds a gateway bound to opts.BaseURL.
func NewTelemetryGateway(opts GatewayOptions, logger *zap.Logger) *TelemetryGateway {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	g := &TelemetryGateway{
		lastSeen: opts.LastSeen,
		timeout:  timeout,
		clock:    opts.Clock,
		logger:   logger,
	}
	if strings.TrimSpace(opts.BaseURL) != "" {
		httpClient := opts.HTTPClient
		if httpClient == nil {
			httpClient = rtdb.NewDefaultHTTPClient(timeout)
		}
		g.reader = rtdb.NewClient(opts.BaseURL, httpClient)
	}
	return g
}

func (g *TelemetryGateway) now() time.Time {
	if g.clock == nil {
		return time.Now().UTC()
	}
	return g.clock().UTC()
}

// Fetch returns the latest reading for deviceID, or nil when none could be obtained.
func (g *TelemetryGateway) Fetch(ctx context.Context, deviceID string) *models.DeviceReading {
	if g.reader == nil {
		g.logger.Debug("telemetry gateway disabled, skipping fetch", zap.String("device_id", deviceID))
		return nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.reader.Get(fetchCtx, deviceID)
	if err != nil {
		switch {
		case errors.Is(err, rtdb.ErrNoDocument):
			g.logger.Warn("no data found for device", zap.String("device_id", deviceID))
		case errors.Is(err, rtdb.ErrMalformedDocument):
			g.logger.Error("failed to parse device document", zap.String("device_id", deviceID), zap.Error(err))
		default:
			g.logger.Error("failed to fetch device document", zap.String("device_id", deviceID), zap.Error(err))
		}
		return nil
	}

	reading, err := g.parseReading(deviceID, raw)
	if err != nil {
		g.logger.Error("device document is not an object", zap.String("device_id", deviceID), zap.Error(err))
		return nil
	}

	if reading.Connected() {
		g.recordLastSeen(ctx, deviceID)
	}
	return reading
}

// CurrentWeight returns the bottle weight in grams.
func (g *TelemetryGateway) CurrentWeight(ctx context.Context, deviceID string) (int, bool) {
	reading := g.Fetch(ctx, deviceID)
	if reading == nil || reading.CurrentWeightG == nil {
		return 0, false
	}
	return *reading.CurrentWeightG, true
}

// TotalConsumed returns the cumulative intake in ml.
func (g *TelemetryGateway) TotalConsumed(ctx context.Context, deviceID string) (int, bool) {
	reading := g.Fetch(ctx, deviceID)
	if reading == nil || reading.TotalWaterDrunkML == nil {
		return 0, false
	}
	return *reading.TotalWaterDrunkML, true
}

// IsConnected reports whether a reading with at least one known field exists.
// It is a point-in-time heuristic with no freshness check.
func (g *TelemetryGateway) IsConnected(ctx context.Context, deviceID string) bool {
	return g.Fetch(ctx, deviceID).Connected()
}

// StatusSummary bundles one fetch into the snapshot served by the API.
// LastUpdated is the time of this call, not of the underlying reading.
func (g *TelemetryGateway) StatusSummary(ctx context.Context, deviceID string) models.DeviceSnapshot {
	reading := g.Fetch(ctx, deviceID)
	if reading == nil {
		return models.DeviceSnapshot{Connected: false, Error: ErrMsgNoData}
	}

	now := g.now()
	snapshot := models.DeviceSnapshot{
		Connected:       reading.Connected(),
		CurrentWeight:   reading.CurrentWeightG,
		TotalWaterDrank: reading.TotalWaterDrunkML,
		LastUpdated:     &now,
		RawData:         reading.Raw,
	}
	if !snapshot.Connected {
		snapshot.Error = ErrMsgNoFields
	}
	if at, ok := g.lastSeenAt(ctx, deviceID); ok {
		snapshot.LastSeen = &at
	}
	return snapshot
}

func (g *TelemetryGateway) parseReading(deviceID string, raw json.RawMessage) (*models.DeviceReading, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	reading := &models.DeviceReading{Raw: raw}
	if value, ok := fields[FieldCurrentWeight]; ok {
		reading.HasCurrentWeight = true
		reading.CurrentWeightG = g.coerce(deviceID, FieldCurrentWeight, value)
	}
	if value, ok := fields[FieldTotalWaterDrank]; ok {
		reading.HasTotalWater = true
		reading.TotalWaterDrunkML = g.coerce(deviceID, FieldTotalWaterDrank, value)
	}
	return reading, nil
}

func (g *TelemetryGateway) coerce(deviceID, field string, value json.RawMessage) *int {
	n, ok := coerceInt(value)
	if !ok {
		g.logger.Error("invalid telemetry value",
			zap.String("device_id", deviceID),
			zap.String("field", field),
			zap.ByteString("value", value),
		)
		return nil
	}
	return &n
}

// coerceInt accepts JSON integers, floats (truncated toward zero) and base-10
// integer strings.
func coerceInt(value json.RawMessage) (int, bool) {
	dec := json.NewDecoder(bytes.NewReader(value))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, false
	}

	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return int(i), true
		}
		f, err := x.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > 1<<53 {
			return 0, false
		}
		return int(f), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func (g *TelemetryGateway) recordLastSeen(ctx context.Context, deviceID string) {
	if g.lastSeen == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, lastSeenDeadline)
	defer cancel()
	if err := g.lastSeen.Record(ctx, deviceID, g.now()); err != nil {
		g.logger.Warn("failed to record device last seen", zap.String("device_id", deviceID), zap.Error(err))
	}
}

func (g *TelemetryGateway) lastSeenAt(ctx context.Context, deviceID string) (time.Time, bool) {
	if g.lastSeen == nil {
		return time.Time{}, false
	}
	ctx, cancel := context.WithTimeout(ctx, lastSeenDeadline)
	defer cancel()
	at, ok, err := g.lastSeen.LastSeen(ctx, deviceID)
	if err != nil {
		g.logger.Warn("failed to read device last seen", zap.String("device_id", deviceID), zap.Error(err))
		return time.Time{}, false
	}
	return at, ok
}
