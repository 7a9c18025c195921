package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/njprem/Fit_city_Booking/internal/domain"
	"github.com/njprem/Fit_city_Booking/internal/repository/ports"
)

var (
	ErrRecordBodyRequired = domain.ValidationError{Field: "body", Msg: "request body is required"}
	ErrRecordInvalidJSON  = domain.ValidationError{Field: "body", Msg: "request body must be valid JSON"}
	ErrBookingIDRequired  = domain.ValidationError{Field: "id", Msg: "booking id is required"}
)

type RecordMetrics interface {
	RecordStored(ok bool)
}

// BookingRecordService is the server side of the booking mirror: it accepts
// records verbatim and lists them in arrival order. Only the id is inspected.
type BookingRecordService struct {
	repo    ports.BookingRecordRepository
	logger  *zap.Logger
	metrics RecordMetrics
}

func NewBookingRecordService(repo ports.BookingRecordRepository, logger *zap.Logger, metrics RecordMetrics) (*BookingRecordService, error) {
	if repo == nil {
		return nil, errors.New("booking record repository is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingRecordService{repo: repo, logger: logger, metrics: metrics}, nil
}

// Create stores body unchanged and returns it as the echo. body must be a
// JSON object whose "id" is a non-empty string or a non-zero number.
func (s *BookingRecordService) Create(ctx context.Context, body []byte) (json.RawMessage, error) {
	record, err := ParseBookingRecord(body)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Append(ctx, record); err != nil {
		s.observe(false)
		s.logger.Error("store booking record failed", zap.String("booking_id", record.ID), zap.Error(err))
		return nil, err
	}
	s.observe(true)
	s.logger.Info("booking record stored", zap.String("booking_id", record.ID))
	return record.Payload, nil
}

func (s *BookingRecordService) List(ctx context.Context) ([]json.RawMessage, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("list booking records failed", zap.Error(err))
		return nil, err
	}
	if records == nil {
		records = []json.RawMessage{}
	}
	return records, nil
}

// ParseBookingRecord checks that body is present and carries an id, without
// interpreting any other member.
func ParseBookingRecord(body []byte) (domain.BookingRecord, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return domain.BookingRecord{}, ErrRecordBodyRequired
	}
	if !json.Valid([]byte(trimmed)) {
		return domain.BookingRecord{}, ErrRecordInvalidJSON
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &members); err != nil {
		// valid JSON but not an object: there is no id to find
		return domain.BookingRecord{}, ErrBookingIDRequired
	}
	id, ok := recordID(members["id"])
	if !ok {
		return domain.BookingRecord{}, ErrBookingIDRequired
	}
	payload := make(json.RawMessage, len(trimmed))
	copy(payload, trimmed)
	return domain.BookingRecord{ID: id, Payload: payload}, nil
}

// recordID accepts the id shapes clients send: a string, or the numeric
// timestamp ids generated by older front ends.
func recordID(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	switch id := v.(type) {
	case string:
		if strings.TrimSpace(id) == "" {
			return "", false
		}
		return id, true
	case float64:
		if id == 0 {
			return "", false
		}
		return string(raw), true
	default:
		return "", false
	}
}

func (s *BookingRecordService) observe(ok bool) {
	if s.metrics != nil {
		s.metrics.RecordStored(ok)
	}
}
