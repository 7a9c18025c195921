package domain

import "encoding/json"

// BookingRecord is a booking as received by the record service. Payload is
// the JSON object exactly as posted; ID is read from its "id" member.
type BookingRecord struct {
	ID      string
	Payload json.RawMessage
}
