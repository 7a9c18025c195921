package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusPending   BookingStatus = "pending"
)

const (
	MinTravelers = 1
	MaxTravelers = 20
)

// Booking is created by the booking service and afterwards only ever removed.
type Booking struct {
	ID              string        `json:"id"`
	FullName        string        `json:"full_name"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	DestinationID   int           `json:"destination_id"`
	DestinationName string        `json:"destination_name"`
	StartDate       time.Time     `json:"start_date"`
	Travelers       int           `json:"travelers"`
	TotalPrice      float64       `json:"total_price"`
	Extras          []string      `json:"extras"`
	SpecialRequests string        `json:"special_requests,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	Status          BookingStatus `json:"status"`
}

func (b Booking) Clone() Booking {
	b.Extras = cloneStrings(b.Extras)
	return b
}

func CloneBookings(in []Booking) []Booking {
	out := make([]Booking, len(in))
	for i, b := range in {
		out[i] = b.Clone()
	}
	return out
}
