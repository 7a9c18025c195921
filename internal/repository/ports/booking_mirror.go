package ports

import (
	"context"

	"github.com/njprem/Fit_city_Booking/internal/domain"
)

type BookingMirror interface {
	CreateBooking(ctx context.Context, booking domain.Booking) (*domain.Booking, error)
	ListBookings(ctx context.Context) ([]domain.Booking, error)
}
