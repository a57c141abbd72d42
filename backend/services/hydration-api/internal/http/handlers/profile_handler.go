package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"hydrohero/backend/services/hydration-api/internal/service"
)

// NewGetProfileHandler returns GET /api/user/profile handler.
func NewGetProfileHandler(svc *service.HydrationService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := svc.Profile(r.Context())
		if err != nil {
			logger.Error("load profile failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to load profile")
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}

// NewUpdateProfileHandler returns PUT /api/user/profile handler.
func NewUpdateProfileHandler(svc *service.HydrationService, logger *zap.Logger) http.HandlerFunc {
	type request struct {
		WeightKg      *int    `json:"weight_kg"`
		Age           *int    `json:"age"`
		ActivityLevel *string `json:"activity_level"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.WeightKg == nil {
			writeError(w, http.StatusBadRequest, "weight_kg is required")
			return
		}

		profile, err := svc.UpdateProfile(r.Context(), service.ProfileInput{
			WeightKg:      *req.WeightKg,
			Age:           req.Age,
			ActivityLevel: req.ActivityLevel,
		})
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidWeight):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				logger.Error("update profile failed", zap.Error(err))
				writeError(w, http.StatusInternalServerError, "failed to update profile")
			}
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}
