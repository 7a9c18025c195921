package domain

import "time"

// Subjects published on the event bus for booking lifecycle changes.
const (
	SubjectBookingCreated      = "booking.created"
	SubjectBookingCancelled    = "booking.cancelled"
	SubjectBookingMirrorFailed = "booking.mirror_failed"
)

type BookingEvent struct {
	BookingID     string    `json:"booking_id"`
	DestinationID int       `json:"destination_id,omitempty"`
	Travelers     int       `json:"travelers,omitempty"`
	TotalPrice    float64   `json:"total_price,omitempty"`
	Error         string    `json:"error,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
