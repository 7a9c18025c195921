package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/njprem/Fit_city_Booking/internal/domain"
	"github.com/njprem/Fit_city_Booking/internal/repository/ports"
)

// Store is the single owner of catalog, bookings, filter criteria and user
// profile. State changes only through the transition methods; every read
// hands out a copy.
//
// Booking-list transitions are write-through: the next list is saved to the
// cache first and committed in memory only when the save succeeded.
type Store struct {
	cache  ports.BookingCache
	logger *zap.Logger

	catalog domain.Catalog
	destIdx map[int]int
	pkgIdx  map[int]int

	mu       sync.RWMutex
	bookings []domain.Booking
	filters  domain.FilterCriteria
	user     domain.UserProfile
}

// NewStore hydrates bookings from cache once. A missing or unreadable cache
// entry starts the store empty and is only logged.
func NewStore(ctx context.Context, catalog domain.Catalog, cache ports.BookingCache, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		cache:   cache,
		logger:  logger,
		catalog: catalog.Clone(),
		destIdx: make(map[int]int, len(catalog.Destinations)),
		pkgIdx:  make(map[int]int, len(catalog.Packages)),
		filters: domain.DefaultFilterCriteria(),
		user:    domain.DefaultUserProfile(),
	}
	for i, d := range s.catalog.Destinations {
		if _, dup := s.destIdx[d.ID]; !dup {
			s.destIdx[d.ID] = i
		}
	}
	for i, p := range s.catalog.Packages {
		if _, dup := s.pkgIdx[p.ID]; !dup {
			s.pkgIdx[p.ID] = i
		}
	}
	s.bookings = s.hydrate(ctx)
	return s
}

func (s *Store) hydrate(ctx context.Context) []domain.Booking {
	if s.cache == nil {
		return []domain.Booking{}
	}
	loaded, err := s.cache.LoadBookings(ctx)
	if err != nil {
		s.logger.Warn("booking cache unreadable, starting empty", zap.Error(err))
		return []domain.Booking{}
	}
	if loaded == nil {
		return []domain.Booking{}
	}
	s.logger.Info("bookings hydrated from cache", zap.Int("count", len(loaded)))
	return domain.CloneBookings(loaded)
}

func (s *Store) Destinations() []domain.Destination {
	return s.catalog.Clone().Destinations
}

func (s *Store) Packages() []domain.Package {
	return s.catalog.Clone().Packages
}

func (s *Store) Destination(id int) (domain.Destination, bool) {
	i, ok := s.destIdx[id]
	if !ok {
		return domain.Destination{}, false
	}
	return s.catalog.Destinations[i].Clone(), true
}

func (s *Store) Package(id int) (domain.Package, bool) {
	i, ok := s.pkgIdx[id]
	if !ok {
		return domain.Package{}, false
	}
	return s.catalog.Packages[i].Clone(), true
}

func (s *Store) PackagesForDestination(destinationID int) []domain.Package {
	out := []domain.Package{}
	for _, p := range s.catalog.Packages {
		if p.DestinationID == destinationID {
			out = append(out, p.Clone())
		}
	}
	return out
}

func (s *Store) Bookings() []domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneBookings(s.bookings)
}

func (s *Store) Booking(id string) (domain.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOfBooking(s.bookings, id); i >= 0 {
		return s.bookings[i].Clone(), true
	}
	return domain.Booking{}, false
}

func (s *Store) User() domain.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Store) Filters() domain.FilterCriteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// AddBooking appends b. Id uniqueness is the caller's responsibility.
func (s *Store) AddBooking(ctx context.Context, b domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.Booking, 0, len(s.bookings)+1)
	next = append(next, s.bookings...)
	next = append(next, b.Clone())
	return s.commitLocked(ctx, "add", next)
}

// CancelBooking removes the booking with id. An unknown id is a no-op and
// reports false without touching the cache.
func (s *Store) CancelBooking(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOfBooking(s.bookings, id)
	if i < 0 {
		return false, nil
	}
	next := make([]domain.Booking, 0, len(s.bookings)-1)
	next = append(next, s.bookings[:i]...)
	next = append(next, s.bookings[i+1:]...)
	if err := s.commitLocked(ctx, "cancel", next); err != nil {
		return false, err
	}
	return true, nil
}

// LoadBookings replaces the whole booking list.
func (s *Store) LoadBookings(ctx context.Context, list []domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(ctx, "load", domain.CloneBookings(list))
}

func (s *Store) UpdateFilters(u domain.FilterUpdate) domain.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = s.filters.Merge(u)
	return s.filters
}

func (s *Store) UpdateUser(u domain.UserProfileUpdate) domain.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = s.user.Merge(u)
	return s.user
}

func (s *Store) commitLocked(ctx context.Context, op string, next []domain.Booking) error {
	if s.cache != nil {
		if err := s.cache.SaveBookings(ctx, next); err != nil {
			s.logger.Error("booking cache write failed", zap.String("op", op), zap.Error(err))
			return domain.LocalPersistenceError{Op: op, Err: err}
		}
	}
	s.bookings = next
	return nil
}

func indexOfBooking(list []domain.Booking, id string) int {
	for i, b := range list {
		if b.ID == id {
			return i
		}
	}
	return -1
}
