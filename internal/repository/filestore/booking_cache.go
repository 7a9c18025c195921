package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/njprem/Fit_city_Booking/internal/domain"
)

// BookingCache keeps the whole booking list as one JSON document named after
// the cache key inside dir.
type BookingCache struct {
	path string
}

func NewBookingCache(dir, key string) (*BookingCache, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("filestore: cache dir is required")
	}
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, `/\`) {
		return nil, fmt.Errorf("filestore: invalid cache key %q", key)
	}
	return &BookingCache{path: filepath.Join(dir, key+".json")}, nil
}

func (c *BookingCache) Path() string { return c.path }

func (c *BookingCache) LoadBookings(ctx context.Context) ([]domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := readFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}
	if b == nil {
		return nil, nil
	}
	var bookings []domain.Booking
	if err := json.Unmarshal(b, &bookings); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.path, err)
	}
	return bookings, nil
}

func (c *BookingCache) SaveBookings(ctx context.Context, bookings []domain.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	b, err := json.Marshal(bookings)
	if err != nil {
		return err
	}
	return writeFile(c.path, b, 0o600)
}
