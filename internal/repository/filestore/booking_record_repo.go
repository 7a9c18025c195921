package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/njprem/Fit_city_Booking/internal/domain"
)

// BookingRecordRepo stores received booking payloads as a single JSON array
// file, appending in arrival order.
type BookingRecordRepo struct {
	path string
	mu   sync.Mutex
}

func NewBookingRecordRepo(path string) (*BookingRecordRepo, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("filestore: record path is required")
	}
	return &BookingRecordRepo{path: path}, nil
}

func (r *BookingRecordRepo) Append(ctx context.Context, record domain.BookingRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.readLocked()
	if err != nil {
		return err
	}
	records = append(records, record.Payload)
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(r.path, b, 0o644)
}

func (r *BookingRecordRepo) List(ctx context.Context) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readLocked()
}

func (r *BookingRecordRepo) readLocked() ([]json.RawMessage, error) {
	b, err := readFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	records := []json.RawMessage{}
	if len(b) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return records, nil
}
