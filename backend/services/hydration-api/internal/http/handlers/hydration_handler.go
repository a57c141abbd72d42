package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"hydrohero/backend/services/hydration-api/internal/service"
)

// NewLogIntakeHandler returns POST /api/hydration/intake handler.
func NewLogIntakeHandler(svc *service.HydrationService, logger *zap.Logger) http.HandlerFunc {
	type request struct {
		IntakeML *int `json:"intake_ml"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.IntakeML == nil {
			writeError(w, http.StatusBadRequest, "intake_ml is required")
			return
		}

		event, err := svc.LogIntake(r.Context(), *req.IntakeML)
		if err != nil {
			if errors.Is(err, service.ErrInvalidIntake) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			logger.Error("log intake failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to log intake")
			return
		}
		writeJSON(w, http.StatusCreated, event)
	}
}

// NewDailyHandler returns GET /api/hydration/daily handler.
func NewDailyHandler(svc *service.HydrationService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		daily, err := svc.DailyTotal(r.Context())
		if err != nil {
			logger.Error("daily total failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to compute daily total")
			return
		}
		writeJSON(w, http.StatusOK, daily)
	}
}

// NewHistoryHandler returns GET /api/hydration/history handler.
func NewHistoryHandler(svc *service.HydrationService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := svc.History(r.Context())
		if err != nil {
			logger.Error("history failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to fetch history")
			return
		}
		writeJSON(w, http.StatusOK, events)
	}
}

// NewPredictionHandler returns GET /api/prediction handler.
func NewPredictionHandler(svc *service.HydrationService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prediction, err := svc.Prediction(r.Context())
		if err != nil {
			logger.Error("prediction failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to compute prediction")
			return
		}
		writeJSON(w, http.StatusOK, prediction)
	}
}

// NewDeviceStatusHandler returns GET /api/device/status handler.
func NewDeviceStatusHandler(svc *service.HydrationService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := svc.DeviceStatus(r.Context())
		if err != nil {
			logger.Error("device status failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to load device status")
			return
		}
		writeJSON(w, http.StatusOK, status)
	}
}
