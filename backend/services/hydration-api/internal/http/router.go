package httpserver

import (
	"net/http"
	"sort"
	"strings"

	"hydrohero/backend/services/hydration-api/internal/http/handlers"
)

// RouterDeps collects handler dependencies.
type RouterDeps struct {
	Health         http.HandlerFunc
	GetProfile     http.HandlerFunc
	UpdateProfile  http.HandlerFunc
	LogIntake      http.HandlerFunc
	DailyTotal     http.HandlerFunc
	History        http.HandlerFunc
	Prediction     http.HandlerFunc
	DeviceStatus   http.HandlerFunc
	FirebaseDevice *handlers.FirebaseHandlers
}

// NewRouter wires HTTP routes.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/health", method(http.MethodGet, deps.Health))

	mux.Handle("/api/user/profile", methods(map[string]http.HandlerFunc{
		http.MethodGet: deps.GetProfile,
		http.MethodPut: deps.UpdateProfile,
	}))

	mux.Handle("/api/hydration/intake", method(http.MethodPost, deps.LogIntake))
	mux.Handle("/api/hydration/daily", method(http.MethodGet, deps.DailyTotal))
	mux.Handle("/api/hydration/history", method(http.MethodGet, deps.History))
	mux.Handle("/api/prediction", method(http.MethodGet, deps.Prediction))
	mux.Handle("/api/device/status", method(http.MethodGet, deps.DeviceStatus))

	if fb := deps.FirebaseDevice; fb != nil {
		mux.Handle("/api/firebase/device/{id}", method(http.MethodGet, fb.Device))
		mux.Handle("/api/firebase/hydration/{id}", method(http.MethodGet, fb.Hydration))
		mux.Handle("/api/firebase/intake/{id}", method(http.MethodGet, fb.Intake))
		mux.Handle("/api/firebase/prediction/{id}", method(http.MethodGet, fb.Prediction))
	}

	return mux
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return methods(map[string]http.HandlerFunc{expected: handler})
}

func methods(byMethod map[string]http.HandlerFunc) http.HandlerFunc {
	allowed := make([]string, 0, len(byMethod))
	for m := range byMethod {
		allowed = append(allowed, m)
	}
	sort.Strings(allowed)
	allow := strings.Join(allowed, ", ")

	return func(w http.ResponseWriter, r *http.Request) {
		handler, ok := byMethod[r.Method]
		if !ok || handler == nil {
			w.Header().Set("Allow", allow)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}
