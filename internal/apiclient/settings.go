package apiclient

import (
	"context"
	"net/http"
)

// Settings is the single settings object kept by the backend.
type Settings struct {
	TransportCostPerKm float64 `json:"transportCostPerKm"`
}

// SettingsClient reads and writes /api/settings.
type SettingsClient struct {
	client *Client
}

// NewSettingsClient wraps client.
func NewSettingsClient(client *Client) *SettingsClient {
	return &SettingsClient{client: client}
}

// Get returns the stored settings.
func (s *SettingsClient) Get(ctx context.Context) (Settings, error) {
	var out Settings
	err := s.client.do(ctx, http.MethodGet, "settings", "settings", nil, nil, &out, 0)
	return out, err
}

// Put replaces the stored settings.
func (s *SettingsClient) Put(ctx context.Context, in Settings) (Settings, error) {
	var out Settings
	err := s.client.do(ctx, http.MethodPut, "settings", "settings", nil, in, &out, 0)
	return out, err
}
