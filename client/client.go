package client

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

	"inkbook/models"
)

// Client talks to the booking API.
type Client struct {
	hc      *http.Client
	baseURL string
	token   string
}

// APIError is a non-2xx response from the booking API.
type APIError struct {
	Status  int
	Message string
	Fields  []string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("booking api: status %d", e.Status)
	}
	return fmt.Sprintf("booking api: %s (status=%d)", e.Message, e.Status)
}

// Is maps API statuses back onto the server's error taxonomy.
func (e *APIError) Is(target error) bool {
	switch target {
	case models.ErrValidation:
		return e.Status == http.StatusBadRequest
	case models.ErrSlotConflict:
		return e.Status == http.StatusConflict
	case models.ErrStoreUnavailable:
		return e.Status == http.StatusServiceUnavailable
	}
	return false
}

// New returns a client for the API rooted at baseURL, e.g.
// "https://studio.example.com/api". A nil hc gets a client with a short timeout.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{hc: hc, baseURL: strings.TrimRight(baseURL, "/")}
}

// WithToken returns a copy of c that sends token as a bearer credential.
// Servers running with admin-gated toggling require one for Toggle.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// CreateSession exchanges the studio's admin passphrase for a session token.
func (c *Client) CreateSession(ctx context.Context, passphrase string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	in := struct {
		Passphrase string `json:"passphrase"`
	}{passphrase}
	if err := c.do(ctx, http.MethodPost, "/admin/session", in, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// List returns every booked slot.
func (c *Client) List(ctx context.Context) ([]models.Booking, error) {
	var out models.BookingsResponse
	if err := c.do(ctx, http.MethodGet, "/bookings", nil, &out); err != nil {
		return nil, err
	}
	return out.Bookings, nil
}

// Toggle flips one slot and returns its new state.
func (c *Client) Toggle(ctx context.Context, date, slotTime string) (bool, error) {
	var out models.ToggleResponse
	err := c.do(ctx, http.MethodPost, "/bookings", models.ToggleRequest{Date: date, Time: slotTime}, &out)
	if err != nil {
		return false, err
	}
	return out.Booked, nil
}

// Submit sends a booking request to the studio.
func (c *Client) Submit(ctx context.Context, req models.SubmissionRequest) (*models.SubmissionResponse, error) {
	var out models.SubmissionResponse
	if err := c.do(ctx, http.MethodPost, "/contact", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Diagnostics reports which store backend the server uses and whether it is reachable.
func (c *Client) Diagnostics(ctx context.Context) (*models.StoreDiagnostics, error) {
	var out models.StoreDiagnostics
	if err := c.do(ctx, http.MethodGet, "/bookings?debug=1", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e struct {
			Message string   `json:"message"`
			Fields  []string `json:"fields"`
		}
		if json.Unmarshal(raw, &e) == nil {
			apiErr.Message = e.Message
			apiErr.Fields = e.Fields
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// IsConflict reports whether err is a slot conflict from the API.
func IsConflict(err error) bool {
	return errors.Is(err, models.ErrSlotConflict)
}
