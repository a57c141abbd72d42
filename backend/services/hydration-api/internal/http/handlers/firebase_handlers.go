package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"hydrohero/backend/services/hydration-api/internal/service"
)

// FirebaseHandlers serves the remote device endpoints.
type FirebaseHandlers struct {
	svc    *service.DeviceService
	logger *zap.Logger
}

// NewFirebaseHandlers returns handler set.
func NewFirebaseHandlers(svc *service.DeviceService, logger *zap.Logger) *FirebaseHandlers {
	return &FirebaseHandlers{svc: svc, logger: logger}
}

// Device handles GET /api/firebase/device/{id}.
func (h *FirebaseHandlers) Device(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Snapshot(r.Context(), id))
}

// Hydration handles GET /api/firebase/hydration/{id}.
func (h *FirebaseHandlers) Hydration(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireID(w, r)
	if !ok {
		return
	}
	data, err := h.svc.Hydration(r.Context(), id)
	if err != nil {
		h.fail(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// Intake handles GET /api/firebase/intake/{id}.
func (h *FirebaseHandlers) Intake(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireID(w, r)
	if !ok {
		return
	}
	intake, err := h.svc.Intake(r.Context(), id)
	if err != nil {
		h.fail(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, intake)
}

// Prediction handles GET /api/firebase/prediction/{id}.
func (h *FirebaseHandlers) Prediction(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireID(w, r)
	if !ok {
		return
	}
	prediction, err := h.svc.Prediction(r.Context(), id)
	if err != nil {
		h.fail(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, prediction)
}

func (h *FirebaseHandlers) requireID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := deviceID(r)
	if id == "" {
		writeError(w, http.StatusBadRequest, "device id is required")
		return "", false
	}
	return id, true
}

func (h *FirebaseHandlers) fail(w http.ResponseWriter, id string, err error) {
	switch {
	case errors.Is(err, service.ErrIncompleteReading):
		writeError(w, http.StatusNotFound, "device data not found or incomplete")
	case errors.Is(err, service.ErrNoRemoteIntake):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("remote device request failed", zap.String("device_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to read device data")
	}
}
