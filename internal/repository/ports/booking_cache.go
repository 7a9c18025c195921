package ports

import (
	"context"

	"github.com/njprem/Fit_city_Booking/internal/domain"
)

// BookingCache is the durable local copy of the full booking list, stored
// under a single key.
type BookingCache interface {
	// LoadBookings returns (nil, nil) when nothing has been stored yet.
	LoadBookings(ctx context.Context) ([]domain.Booking, error)
	SaveBookings(ctx context.Context, bookings []domain.Booking) error
}
