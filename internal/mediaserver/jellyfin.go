package mediaserver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"membership-system/internal/retry"
)

const clientDeviceName = "membership-bot"

type JellyfinConfig struct {
	BaseURL string
	// APIKey is an administrator API key; user-scoped tokens cannot
	// change another user's policy.
	APIKey  string
	Timeout time.Duration
}

// JellyfinClient is the Jellyfin admin API adapter. Emby exposes the
// same user-policy surface, so NewEmbyClient reuses it.
type JellyfinClient struct {
	http *resty.Client
}

func NewJellyfinClient(cfg JellyfinConfig) *JellyfinClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	c := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("X-Emby-Token", cfg.APIKey).
		SetHeader("X-Emby-Authorization",
			fmt.Sprintf(`MediaBrowser Client="%s", Device="%s", DeviceId="%s", Version="1.0"`,
				clientDeviceName, clientDeviceName, clientDeviceName))
	return &JellyfinClient{http: c}
}

func NewEmbyClient(cfg JellyfinConfig) *JellyfinClient {
	return NewJellyfinClient(cfg)
}

// DisableUser sets IsDisabled on the user's policy. Server errors are
// retried a couple of times before the failure is reported; a 4xx is
// returned immediately since retrying cannot help.
func (c *JellyfinClient) DisableUser(ctx context.Context, externalUserID string) error {
	if externalUserID == "" {
		return fmt.Errorf("jellyfin: empty external user id")
	}

	return retry.DoWithRetry(ctx, 3, 500*time.Millisecond, func() error {
		resp, err := c.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(map[string]any{"IsDisabled": true}).
			Post(fmt.Sprintf("/Users/%s/Policy", externalUserID))
		if err != nil {
			return fmt.Errorf("jellyfin: disable user %s: %w", externalUserID, err)
		}
		if resp.IsError() {
			err := fmt.Errorf("jellyfin: disable user %s: status %d", externalUserID, resp.StatusCode())
			if resp.StatusCode() < 500 {
				return retry.Permanent(err)
			}
			return err
		}
		return nil
	})
}
