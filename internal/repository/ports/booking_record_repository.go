package ports

import (
	"context"
	"encoding/json"

	"github.com/njprem/Fit_city_Booking/internal/domain"
)

// BookingRecordRepository backs the remote booking record service. Payloads
// are stored verbatim and listed in insertion order.
type BookingRecordRepository interface {
	Append(ctx context.Context, record domain.BookingRecord) error
	List(ctx context.Context) ([]json.RawMessage, error)
}
