package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/njprem/Fit_city_Booking/internal/domain"
)

const bookingsPath = "/api/bookings"

// BookingClient talks to the remote booking record service.
type BookingClient struct {
	Base string
	HTTP *http.Client
}

func NewBookingClient(base string, httpClient *http.Client) (*BookingClient, error) {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return nil, errors.New("remote: base url is required")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &BookingClient{Base: base, HTTP: httpClient}, nil
}

// StatusError is returned for any non-2xx answer from the record service.
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote %s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("remote %s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

func (c *BookingClient) CreateBooking(ctx context.Context, booking domain.Booking) (*domain.Booking, error) {
	var out domain.Booking
	if err := c.post(ctx, bookingsPath, booking, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *BookingClient) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	out := []domain.Booking{}
	if err := c.getJSON(ctx, bookingsPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookingClient) post(ctx context.Context, path string, in any, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, out)
}

func (c *BookingClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, path, out)
}

func (c *BookingClient) do(req *http.Request, path string, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return &StatusError{
			Method:  req.Method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: errorMessage(resp.Body),
		}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("remote %s %s: decode response: %w", req.Method, path, err)
	}
	return nil
}

// errorMessage extracts {"error": "..."} from a failed response, if present.
func errorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4<<10))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		return payload.Error
	}
	return ""
}
