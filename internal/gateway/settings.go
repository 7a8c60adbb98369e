package gateway

import (
	"context"
	"net/http"

	"voicemail-console/internal/settings"
)

func (c *Client) GetSettings(ctx context.Context) (settings.Settings, error) {
	var s settings.Settings
	err := c.do(ctx, "get_settings", http.MethodGet, "/api/settings", nil, &s)
	return s, err
}

func (c *Client) UpdateSettings(ctx context.Context, p settings.Patch) (settings.Settings, error) {
	var s settings.Settings
	err := c.do(ctx, "update_settings", http.MethodPost, "/api/settings", p, &s)
	return s, err
}

func (c *Client) SetCatchAll(ctx context.Context, enabled bool) error {
	body := struct {
		Enabled bool `json:"enabled"`
	}{enabled}
	return c.do(ctx, "set_catch_all", http.MethodPost, "/api/settings/catch-all", body, nil)
}

func (c *Client) SetCatchAllGreeting(ctx context.Context, greeting string) error {
	body := struct {
		Greeting string `json:"greeting"`
	}{greeting}
	return c.do(ctx, "set_catch_all_greeting", http.MethodPost, "/api/settings/catch-all-greeting", body, nil)
}

var _ settings.Gateway = (*Client)(nil)
