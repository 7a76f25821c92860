package sheetdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

// Client talks to a spreadsheet-backed reservation API (SheetDB style).
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("sheetdb: base URL is required")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type row struct {
	Date    string `json:"Date"`
	Time    string `json:"Time"`
	Name    string `json:"Name,omitempty"`
	Phone   string `json:"Phone,omitempty"`
	Service string `json:"Service,omitempty"`
}

type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("sheetdb: unexpected status %d: %s", e.Status, e.Body)
}

// ListBookedTimes returns the Time column of every row for date.
func (c *Client) ListBookedTimes(ctx context.Context, date string) ([]string, error) {
	q := url.Values{}
	q.Set("Date", date)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("sheetdb: build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var rows []row
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("sheetdb: decode search response: %w", err)
	}

	times := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Time != "" {
			times = append(times, r.Time)
		}
	}
	return times, nil
}

func (c *Client) AppendReservation(ctx context.Context, r domain.Reservation) error {
	payload, err := json.Marshal(struct {
		Data []row `json:"data"`
	}{
		Data: []row{{
			Date:    r.Date,
			Time:    r.Time,
			Name:    r.Name,
			Phone:   r.Phone,
			Service: r.Service.Info().Label,
		}},
	})
	if err != nil {
		return fmt.Errorf("sheetdb: marshal row: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("sheetdb: build append request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	_, err = c.do(req)
	return err
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheetdb: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("sheetdb: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}

var _ domain.ReservationStore = (*Client)(nil)
