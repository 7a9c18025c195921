package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/njprem/Fit_city_Booking/internal/domain"
)

var errCacheDown = errors.New("cache unavailable")

// memoryCache is a BookingCache that keeps the serialized list in memory and
// counts writes.
type memoryCache struct {
	mu      sync.Mutex
	stored  []domain.Booking
	present bool
	saves   int
	loadErr error
	saveErr error
}

func (c *memoryCache) LoadBookings(context.Context) ([]domain.Booking, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loadErr != nil {
		return nil, c.loadErr
	}
	if !c.present {
		return nil, nil
	}
	return domain.CloneBookings(c.stored), nil
}

func (c *memoryCache) SaveBookings(_ context.Context, bookings []domain.Booking) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saveErr != nil {
		return c.saveErr
	}
	c.stored = domain.CloneBookings(bookings)
	c.present = true
	c.saves++
	return nil
}

func (c *memoryCache) snapshot() ([]domain.Booking, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.CloneBookings(c.stored), c.saves
}

// fakeMirror records mirrored bookings. When block is set, CreateBooking waits
// for it or for the context to end.
type fakeMirror struct {
	mu       sync.Mutex
	received []domain.Booking
	err      error
	block    chan struct{}
	ctxErr   error
}

func (m *fakeMirror) CreateBooking(ctx context.Context, b domain.Booking) (*domain.Booking, error) {
	if m.block != nil {
		select {
		case <-m.block:
		case <-ctx.Done():
			m.mu.Lock()
			m.ctxErr = ctx.Err()
			m.mu.Unlock()
			return nil, ctx.Err()
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.received = append(m.received, b)
	return &b, nil
}

func (m *fakeMirror) ListBookings(context.Context) ([]domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return domain.CloneBookings(m.received), nil
}

func (m *fakeMirror) receivedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.received))
	for _, b := range m.received {
		ids = append(ids, b.ID)
	}
	return ids
}

type publishedEvent struct {
	subject string
	event   domain.BookingEvent
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, subject string, message any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	ev, _ := message.(domain.BookingEvent)
	p.events = append(p.events, publishedEvent{subject: subject, event: ev})
	return nil
}

func (p *fakePublisher) subjects() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.subject)
	}
	return out
}

type countingMetrics struct {
	mu            sync.Mutex
	created       int
	cancelled     int
	mirrorOK      int
	mirrorFailed  int
	recordsOK     int
	recordsFailed int
}

func (m *countingMetrics) BookingCreated() {
	m.mu.Lock()
	m.created++
	m.mu.Unlock()
}

func (m *countingMetrics) BookingCancelled() {
	m.mu.Lock()
	m.cancelled++
	m.mu.Unlock()
}

func (m *countingMetrics) MirrorObserved(ok bool, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ok {
		m.mirrorOK++
	} else {
		m.mirrorFailed++
	}
}

func (m *countingMetrics) RecordStored(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ok {
		m.recordsOK++
	} else {
		m.recordsFailed++
	}
}

func testCatalog() domain.Catalog {
	return domain.Catalog{
		Destinations: []domain.Destination{
			{ID: 1, Name: "Santorini Sunset Villa", Location: "Santorini", Country: "Greece", Category: "Beach", Price: 500, Rating: 4.9, Highlights: []string{"Caldera"}},
			{ID: 2, Name: "Kyoto Temple Trail", Location: "Kyoto", Country: "Japan", Category: "Cultural", Price: 900, Rating: 4.7},
			{ID: 3, Name: "Swiss Alps Adventure", Location: "Interlaken", Country: "Switzerland", Category: "Adventure", Price: 1800, Rating: 4.2},
			{ID: 4, Name: "Bali Jungle Retreat", Location: "Ubud", Country: "Indonesia", Category: "Wellness", Price: 200, Rating: 3.9},
			{ID: 5, Name: "Maldives Overwater Escape", Location: "North Male Atoll", Country: "Maldives", Category: "Beach", Price: 3200, Rating: 4.9},
		},
		Packages: []domain.Package{
			{ID: 101, DestinationID: 1, Name: "Greek Island Honeymoon", Price: 2600, Includes: []string{"Ferry"}},
			{ID: 102, DestinationID: 2, Name: "Japan Heritage Circuit", Price: 2300},
			{ID: 103, DestinationID: 1, Name: "Santorini Wine Week", Price: 1900},
			{ID: 104, DestinationID: 3, Name: "Alpine Thrill Week", Price: 2500},
		},
	}
}

func floatPtr(v float64) *float64 { return &v }

func stringPtr(v string) *string { return &v }
