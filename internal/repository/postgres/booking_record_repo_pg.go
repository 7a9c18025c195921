package postgres

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/njprem/Fit_city_Booking/internal/domain"
	"github.com/njprem/Fit_city_Booking/internal/repository/ports"
)

// bookingRecordSchema mirrors the record service's append-only semantics:
// the same booking id may be posted twice, so seq is the key. payload is JSON
// rather than JSONB so the posted text is returned unchanged.
const bookingRecordSchema = `
	CREATE TABLE IF NOT EXISTS booking_record (
		seq         BIGSERIAL PRIMARY KEY,
		booking_id  TEXT NOT NULL,
		payload     JSON NOT NULL,
		extras      TEXT[],
		received_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS booking_record_booking_id_idx ON booking_record (booking_id);
`

type BookingRecordRepository struct {
	db *sqlx.DB
}

func NewBookingRecordRepo(db *sqlx.DB) *BookingRecordRepository {
	return &BookingRecordRepository{db: db}
}

func (r *BookingRecordRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, bookingRecordSchema)
	return err
}

func (r *BookingRecordRepository) Append(ctx context.Context, rec domain.BookingRecord) error {
	const query = `
		INSERT INTO booking_record (booking_id, payload, extras)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.ExecContext(ctx, query, rec.ID, string(rec.Payload), pq.Array(payloadExtras(rec.Payload)))
	return err
}

func (r *BookingRecordRepository) List(ctx context.Context) ([]json.RawMessage, error) {
	const query = `SELECT payload FROM booking_record ORDER BY seq ASC`
	var payloads []string
	if err := r.db.SelectContext(ctx, &payloads, query); err != nil {
		return nil, err
	}
	out := make([]json.RawMessage, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, json.RawMessage(p))
	}
	return out, nil
}

// payloadExtras copies the "extras" string list into its own column for
// reporting. Payloads without a well-formed list store NULL.
func payloadExtras(payload json.RawMessage) []string {
	var fields struct {
		Extras []string `json:"extras"`
	}
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil
	}
	return fields.Extras
}

var _ ports.BookingRecordRepository = (*BookingRecordRepository)(nil)
