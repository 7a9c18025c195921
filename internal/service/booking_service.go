package service

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/njprem/Fit_city_Booking/internal/domain"
	"github.com/njprem/Fit_city_Booking/internal/repository/ports"
)

const DefaultMirrorTimeout = 5 * time.Second

var (
	ErrMirrorNotConfigured = errors.New("remote booking mirror not configured")

	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
)

// BookingMetrics receives booking and mirror outcomes.
type BookingMetrics interface {
	BookingCreated()
	BookingCancelled()
	MirrorObserved(ok bool, elapsed time.Duration)
}

type BookingInput struct {
	ID              string
	FullName        string
	Email           string
	Phone           string
	DestinationID   int
	StartDate       time.Time
	Travelers       int
	Extras          []string
	SpecialRequests string
	// BasePrice overrides the destination's list price when set.
	BasePrice *float64
	// Duration is accepted for the booking form but does not affect price.
	Duration string
}

type BookingServiceConfig struct {
	MirrorTimeout time.Duration
	Logger        *zap.Logger
	Metrics       BookingMetrics
	Events        ports.EventPublisher
}

type BookingService struct {
	store  *Store
	mirror ports.BookingMirror
	events ports.EventPublisher

	metrics       BookingMetrics
	logger        *zap.Logger
	mirrorTimeout time.Duration

	now   func() time.Time
	newID func() string

	// createMu makes the id-in-use check and the insert one step.
	createMu sync.Mutex
	inflight sync.WaitGroup
}

func NewBookingService(store *Store, mirror ports.BookingMirror, cfg BookingServiceConfig) *BookingService {
	timeout := cfg.MirrorTimeout
	if timeout <= 0 {
		timeout = DefaultMirrorTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	var metrics BookingMetrics = noopBookingMetrics{}
	if cfg.Metrics != nil {
		metrics = cfg.Metrics
	}
	return &BookingService{
		store:         store,
		mirror:        mirror,
		events:        cfg.Events,
		metrics:       metrics,
		logger:        logger,
		mirrorTimeout: timeout,
		now:           func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		newID:         uuid.NewString,
	}
}

func (s *BookingService) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *BookingService) SetIDGenerator(fn func() string) {
	if fn != nil {
		s.newID = fn
	}
}

// CalculatePrice is basePrice times travelers. duration does not scale the price.
func CalculatePrice(basePrice float64, travelers int, duration string) float64 {
	_ = duration
	return basePrice * float64(travelers)
}

// CreateBooking validates input, stores the booking locally and starts a
// detached mirror write. The returned booking is final once the local write
// succeeded; the mirror outcome is only logged, counted and published.
func (s *BookingService) CreateBooking(ctx context.Context, in BookingInput) (*domain.Booking, error) {
	dest, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	base := dest.Price
	if in.BasePrice != nil {
		base = *in.BasePrice
	}

	s.createMu.Lock()
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = s.newID()
	}
	if _, taken := s.store.Booking(id); taken {
		s.createMu.Unlock()
		return nil, domain.ValidationError{Field: "id", Msg: "booking id already in use"}
	}

	booking := domain.Booking{
		ID:              id,
		FullName:        strings.TrimSpace(in.FullName),
		Email:           strings.TrimSpace(in.Email),
		Phone:           strings.TrimSpace(in.Phone),
		DestinationID:   dest.ID,
		DestinationName: dest.Name,
		StartDate:       in.StartDate,
		Travelers:       in.Travelers,
		TotalPrice:      CalculatePrice(base, in.Travelers, in.Duration),
		Extras:          cleanExtras(in.Extras),
		SpecialRequests: strings.TrimSpace(in.SpecialRequests),
		CreatedAt:       s.now(),
		Status:          domain.BookingStatusConfirmed,
	}
	err = s.store.AddBooking(ctx, booking)
	s.createMu.Unlock()
	if err != nil {
		return nil, err
	}

	s.metrics.BookingCreated()
	s.logger.Info("booking created",
		zap.String("booking_id", booking.ID),
		zap.Int("destination_id", booking.DestinationID),
		zap.Int("travelers", booking.Travelers),
		zap.Float64("total_price", booking.TotalPrice),
	)
	s.publish(ctx, domain.SubjectBookingCreated, domain.BookingEvent{
		BookingID:     booking.ID,
		DestinationID: booking.DestinationID,
		Travelers:     booking.Travelers,
		TotalPrice:    booking.TotalPrice,
		OccurredAt:    booking.CreatedAt,
	})
	s.mirrorAsync(ctx, booking.Clone())

	return &booking, nil
}

// CancelBooking removes id from the store. Unknown ids report false.
func (s *BookingService) CancelBooking(ctx context.Context, id string) (bool, error) {
	removed, err := s.store.CancelBooking(ctx, id)
	if err != nil || !removed {
		return removed, err
	}
	s.metrics.BookingCancelled()
	s.logger.Info("booking cancelled", zap.String("booking_id", id))
	s.publish(ctx, domain.SubjectBookingCancelled, domain.BookingEvent{BookingID: id, OccurredAt: s.now()})
	return true, nil
}

// MirroredBookings lists what the remote record service holds.
func (s *BookingService) MirroredBookings(ctx context.Context) ([]domain.Booking, error) {
	if s.mirror == nil {
		return nil, ErrMirrorNotConfigured
	}
	return s.mirror.ListBookings(ctx)
}

// Wait blocks until every mirror write started so far has finished.
func (s *BookingService) Wait() {
	s.inflight.Wait()
}

func (s *BookingService) mirrorAsync(parent context.Context, booking domain.Booking) {
	if s.mirror == nil {
		return
	}
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), s.mirrorTimeout)
		defer cancel()

		started := time.Now()
		_, err := s.mirror.CreateBooking(ctx, booking)
		elapsed := time.Since(started)
		s.metrics.MirrorObserved(err == nil, elapsed)

		if err != nil {
			mirrorErr := domain.RemoteMirrorError{BookingID: booking.ID, Err: err}
			s.logger.Warn("booking mirror failed",
				zap.String("booking_id", booking.ID),
				zap.Duration("elapsed", elapsed),
				zap.Error(mirrorErr),
			)
			s.publish(ctx, domain.SubjectBookingMirrorFailed, domain.BookingEvent{
				BookingID:  booking.ID,
				Error:      err.Error(),
				OccurredAt: s.now(),
			})
			return
		}
		s.logger.Debug("booking mirrored", zap.String("booking_id", booking.ID), zap.Duration("elapsed", elapsed))
	}()
}

func (s *BookingService) publish(ctx context.Context, subject string, event domain.BookingEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(context.WithoutCancel(ctx), subject, event); err != nil {
		s.logger.Warn("booking event publish failed", zap.String("subject", subject), zap.Error(err))
	}
}

func (s *BookingService) validate(in BookingInput) (domain.Destination, error) {
	var errs []error
	add := func(field, msg string) {
		errs = append(errs, domain.ValidationError{Field: field, Msg: msg})
	}

	if strings.TrimSpace(in.FullName) == "" {
		add("full_name", "full name is required")
	}
	switch email := strings.TrimSpace(in.Email); {
	case email == "":
		add("email", "email is required")
	case !emailPattern.MatchString(email):
		add("email", "email is invalid")
	}
	switch phone := strings.TrimSpace(in.Phone); {
	case phone == "":
		add("phone", "phone number is required")
	case !phonePattern.MatchString(phone):
		add("phone", "phone number is invalid")
	}
	if in.StartDate.IsZero() {
		add("start_date", "start date is required")
	} else if dayOf(in.StartDate).Before(dayOf(s.now())) {
		add("start_date", "start date cannot be in the past")
	}
	if in.Travelers < domain.MinTravelers || in.Travelers > domain.MaxTravelers {
		add("travelers", "travelers must be between "+strconv.Itoa(domain.MinTravelers)+" and "+strconv.Itoa(domain.MaxTravelers))
	}
	if in.BasePrice != nil && *in.BasePrice < 0 {
		add("base_price", "base price cannot be negative")
	}

	dest, ok := s.store.Destination(in.DestinationID)
	if !ok {
		add("destination_id", "destination "+strconv.Itoa(in.DestinationID)+" does not exist")
	}
	if len(errs) > 0 {
		return domain.Destination{}, errors.Join(errs...)
	}
	return dest, nil
}

// dayOf truncates t to midnight UTC of its own calendar date.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func cleanExtras(in []string) []string {
	var out []string
	for _, e := range in {
		if trimmed := strings.TrimSpace(e); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

type noopBookingMetrics struct{}

func (noopBookingMetrics) BookingCreated()                    {}
func (noopBookingMetrics) BookingCancelled()                  {}
func (noopBookingMetrics) MirrorObserved(bool, time.Duration) {}
