package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"LavaderoApp/app/config"
)

// BookingClient talks to the remote online booking backend
type BookingClient struct {
	cfg        config.APIConfig
	httpClient *http.Client
}

// NewBookingClient builds a client with the configured fixed timeouts.
// There is no retry logic anywhere, a failed call is surfaced to the caller.
func NewBookingClient(cfg config.APIConfig) *BookingClient {
	dialer := &net.Dialer{
		Timeout: time.Duration(cfg.ConnectTimeout) * time.Second,
	}
	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		ResponseHeaderTimeout: time.Duration(cfg.ReadTimeout) * time.Second,
	}
	return &BookingClient{
		cfg: cfg,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(cfg.ReadTimeout+cfg.WriteTimeout) * time.Second,
		},
	}
}

// Health probes the backend health endpoint. Used at startup for a
// connectivity check, a failure is a warning for the caller, never fatal.
func (c *BookingClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+c.cfg.HealthPath, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("booking API unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("booking API health check returned status %d", resp.StatusCode)
	}
	return nil
}

// FetchBookings retrieves all remote bookings
func (c *BookingClient) FetchBookings(ctx context.Context) ([]BookingDTO, error) {
	var bookings []BookingDTO
	err := c.doJSON(ctx, http.MethodGet, c.cfg.AppointmentsPath, nil, &bookings)
	return bookings, err
}

// FetchBookingsByDate retrieves the remote bookings for one day.
// Dates travel as ISO-8601 local dates.
func (c *BookingClient) FetchBookingsByDate(ctx context.Context, date time.Time) ([]BookingDTO, error) {
	path := fmt.Sprintf("%s?fecha=%s", c.cfg.AppointmentsPath, date.Format("2006-01-02"))
	var bookings []BookingDTO
	err := c.doJSON(ctx, http.MethodGet, path, nil, &bookings)
	return bookings, err
}

// CreateBooking registers a new booking on the remote backend
func (c *BookingClient) CreateBooking(ctx context.Context, dto BookingDTO) (*BookingDTO, error) {
	var created BookingDTO
	if err := c.doJSON(ctx, http.MethodPost, c.cfg.AppointmentsPath, dto, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateBookingStatus pushes a status change back to the remote backend
func (c *BookingClient) UpdateBookingStatus(ctx context.Context, id int64, estado string) error {
	path := fmt.Sprintf("%s/%d/estado", c.cfg.AppointmentsPath, id)
	return c.doJSON(ctx, http.MethodPut, path, BookingStatusUpdate{Estado: estado}, nil)
}

// DeleteBooking removes a booking from the remote backend
func (c *BookingClient) DeleteBooking(ctx context.Context, id int64) error {
	path := fmt.Sprintf("%s/%d", c.cfg.AppointmentsPath, id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// doJSON performs one JSON request/response round trip
func (c *BookingClient) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error encoding request body: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error calling booking API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("booking API returned status %d: %s", resp.StatusCode, string(data))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

func (c *BookingClient) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cfg.AuthEnabled && c.cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AuthToken)
	}
}
