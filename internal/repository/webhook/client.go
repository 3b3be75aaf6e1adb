package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/NordCoder/uptime-monitor/internal/domain/notification"
	"github.com/NordCoder/uptime-monitor/internal/obs"
)

var _ notification.WebhookSender = (*Client)(nil)

// DeliveryError reports a webhook that could not be delivered. StatusCode is
// zero when no response was received.
type DeliveryError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("webhook %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("webhook %s: %v", e.URL, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

type Client struct {
	HTTP      *http.Client
	UserAgent string
}

func New(timeout time.Duration, userAgent string) *Client {
	return &Client{
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: obs.HTTPTransport(http.DefaultTransport),
		},
		UserAgent: userAgent,
	}
}

// PostWebhook POSTs p as JSON to url. Any 2xx counts as delivered.
func (c *Client) PostWebhook(ctx context.Context, url string, p notification.WebhookPayload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &DeliveryError{URL: url, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &DeliveryError{URL: url, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode/100 != 2 {
		return &DeliveryError{URL: url, StatusCode: resp.StatusCode}
	}
	return nil
}
