package clients

import (
	"context"
	"net/url"
)

// Profile is the subset of the backend profile the simulator needs.
type Profile struct {
	WeightKg int `json:"weight_kg"`
}

// DeviceSnapshot is the subset of the backend device snapshot used by health checks.
type DeviceSnapshot struct {
	Connected       bool   `json:"connected"`
	TotalWaterDrank *int   `json:"totalWaterDrank"`
	Error           string `json:"error"`
}

// BackendClient talks to the hydration API.
type BackendClient struct {
	base *BaseClient
}

// NewBackendClient returns client rooted at the API prefix, e.g. http://localhost:8000/api.
func NewBackendClient(baseURL string, httpClient HTTPDoer) *BackendClient {
	return &BackendClient{base: NewBaseClient(baseURL, httpClient)}
}

// Profile fetches the stored user profile.
func (c *BackendClient) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.base.GetJSON(ctx, "/user/profile", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeviceSnapshot fetches the backend's view of a remote device.
func (c *BackendClient) DeviceSnapshot(ctx context.Context, deviceID string) (*DeviceSnapshot, error) {
	var s DeviceSnapshot
	if err := c.base.GetJSON(ctx, "/firebase/device/"+url.PathEscape(deviceID), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Probe checks that target answers with a non-error status.
func Probe(ctx context.Context, httpClient HTTPDoer, target string) error {
	status, _, err := NewBaseClient(target, httpClient).Get(ctx, target)
	if err != nil {
		return err
	}
	if status >= 400 {
		return &StatusError{URL: target, StatusCode: status}
	}
	return nil
}
