package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

// Client posts booking notifications to the operator relay webhook.
type Client struct {
	url        string
	httpClient *http.Client
}

func New(url string, timeout time.Duration) (*Client, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("relay: URL is required")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (c *Client) Notify(ctx context.Context, n domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("relay: marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("relay: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("relay: post notification: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("relay: read response: %w", err)
	}

	var out response
	if err := json.Unmarshal(body, &out); err != nil {
		return fmt.Errorf("relay: malformed response (status %d): %w", resp.StatusCode, err)
	}
	if !out.Success {
		return &domain.RelayRejectedError{Reason: out.Error}
	}
	return nil
}

var _ domain.Relay = (*Client)(nil)

var ErrNotConfigured = errors.New("relay: not configured")

// Disabled is used when no relay URL is configured; every notification
// fails softly.
type Disabled struct{}

func (Disabled) Notify(context.Context, domain.Notification) error {
	return ErrNotConfigured
}

var _ domain.Relay = Disabled{}
