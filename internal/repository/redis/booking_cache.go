package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/njprem/Fit_city_Booking/internal/domain"
)

// keyValue is the slice of *redis.Client the cache needs.
type keyValue interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// BookingCache stores the full booking list as JSON under a single key with
// no expiry.
type BookingCache struct {
	client keyValue
	key    string
}

func NewBookingCache(client *redis.Client, key string) (*BookingCache, error) {
	if client == nil {
		return nil, errors.New("redis: client cannot be nil")
	}
	return newBookingCache(client, key)
}

func newBookingCache(client keyValue, key string) (*BookingCache, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, errors.New("redis: cache key is required")
	}
	return &BookingCache{client: client, key: key}, nil
}

func (c *BookingCache) LoadBookings(ctx context.Context) ([]domain.Booking, error) {
	val, err := c.client.Get(ctx, c.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s from redis: %w", c.key, err)
	}
	var bookings []domain.Booking
	if err := json.Unmarshal([]byte(val), &bookings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", c.key, err)
	}
	return bookings, nil
}

func (c *BookingCache) SaveBookings(ctx context.Context, bookings []domain.Booking) error {
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	data, err := json.Marshal(bookings)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", c.key, err)
	}
	if err := c.client.Set(ctx, c.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %s to redis: %w", c.key, err)
	}
	return nil
}
