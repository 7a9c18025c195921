package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/njprem/Fit_city_Booking/internal/domain"
	"github.com/njprem/Fit_city_Booking/internal/repository/ports"
)

const objectPrefix = "bookings/"

// BookingRecordRepo keeps one object per received booking payload. Object names
// start with a zero-padded arrival timestamp so lexical order is arrival order.
type BookingRecordRepo struct {
	storage ports.ObjectStorage
	bucket  string

	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewBookingRecordRepo(storage ports.ObjectStorage, bucket string) (*BookingRecordRepo, error) {
	if storage == nil {
		return nil, errors.New("objectstore: storage cannot be nil")
	}
	if strings.TrimSpace(bucket) == "" {
		return nil, errors.New("objectstore: bucket is required")
	}
	return &BookingRecordRepo{storage: storage, bucket: bucket, now: time.Now}, nil
}

func (r *BookingRecordRepo) Append(ctx context.Context, record domain.BookingRecord) error {
	data := []byte(record.Payload)
	name := r.objectName(record.ID)
	if _, err := r.storage.Upload(ctx, r.bucket, name, "application/json", bytes.NewReader(data), int64(len(data))); err != nil {
		return err
	}
	return nil
}

func (r *BookingRecordRepo) List(ctx context.Context) ([]json.RawMessage, error) {
	names, err := r.storage.List(ctx, r.bucket, objectPrefix)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	out := make([]json.RawMessage, 0, len(names))
	for _, name := range names {
		data, err := r.storage.Download(ctx, r.bucket, name)
		if err != nil {
			return nil, err
		}
		if !json.Valid(data) {
			return nil, fmt.Errorf("decode %s: invalid JSON", name)
		}
		out = append(out, json.RawMessage(data))
	}
	return out, nil
}

func (r *BookingRecordRepo) objectName(bookingID string) string {
	r.mu.Lock()
	stamp := r.now().UnixNano()
	if stamp <= r.last {
		stamp = r.last + 1
	}
	r.last = stamp
	r.mu.Unlock()
	return fmt.Sprintf("%s%020d-%s.json", objectPrefix, stamp, url.PathEscape(bookingID))
}

var _ ports.BookingRecordRepository = (*BookingRecordRepo)(nil)
