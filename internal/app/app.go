package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/njprem/Fit_city_Booking/internal/config"
	"github.com/njprem/Fit_city_Booking/internal/domain"
	"github.com/njprem/Fit_city_Booking/internal/logging"
	"github.com/njprem/Fit_city_Booking/internal/metrics"
	"github.com/njprem/Fit_city_Booking/internal/repository/catalog"
	"github.com/njprem/Fit_city_Booking/internal/repository/filestore"
	natsrepo "github.com/njprem/Fit_city_Booking/internal/repository/nats"
	"github.com/njprem/Fit_city_Booking/internal/repository/ports"
	redisrepo "github.com/njprem/Fit_city_Booking/internal/repository/redis"
	"github.com/njprem/Fit_city_Booking/internal/repository/remote"
	"github.com/njprem/Fit_city_Booking/internal/service"
)

// Traveler holds everything a process that owns the booking store needs:
// the API server and the CLI share it.
type Traveler struct {
	Config   config.Config
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	Store    *service.Store
	Bookings *service.BookingService

	closers []func()
}

func NewTraveler(ctx context.Context, cfg config.Config, serviceName string) (*Traveler, error) {
	if err := cfg.ValidateClient(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, flush, err := logging.New(logging.Options{
		Level:        cfg.LogLevel,
		Encoding:     cfg.LogEncoding,
		LogstashAddr: cfg.LogstashTCPAddr,
		Service:      serviceName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	t := &Traveler{Config: cfg, Logger: logger, Metrics: metrics.New("fitcity")}
	t.closers = append(t.closers, flush)

	cat, err := loadCatalog(ctx, cfg.CatalogPath)
	if err != nil {
		t.Close()
		return nil, err
	}
	logger.Info("catalog loaded",
		zap.String("path", cfg.CatalogPath),
		zap.Int("destinations", len(cat.Destinations)),
		zap.Int("packages", len(cat.Packages)),
	)

	cache, err := t.bookingCache(ctx)
	if err != nil {
		t.Close()
		return nil, err
	}

	var mirror ports.BookingMirror
	if base := strings.TrimSpace(cfg.RemoteBookingsURL); base != "" {
		client, err := remote.NewBookingClient(base, &http.Client{Timeout: cfg.RemoteMirrorTimeout})
		if err != nil {
			t.Close()
			return nil, err
		}
		mirror = client
		logger.Info("booking mirror configured", zap.String("url", client.Base))
	} else {
		logger.Info("booking mirror disabled")
	}

	var events ports.EventPublisher
	if url := strings.TrimSpace(cfg.NATSURL); url != "" {
		nc, err := natsrepo.NewConnection(url, serviceName, logger)
		if err != nil {
			// events are optional; bookings must keep working without the broker
			logger.Warn("nats unavailable, booking events disabled", zap.Error(err))
		} else {
			pub, err := natsrepo.NewPublisher(nc)
			if err != nil {
				nc.Close()
				t.Close()
				return nil, err
			}
			events = pub
			t.closers = append(t.closers, func() { _ = nc.Drain() })
		}
	}

	t.Store = service.NewStore(ctx, cat, cache, logger)
	t.Bookings = service.NewBookingService(t.Store, mirror, service.BookingServiceConfig{
		MirrorTimeout: cfg.RemoteMirrorTimeout,
		Logger:        logger,
		Metrics:       t.Metrics,
		Events:        events,
	})
	return t, nil
}

// Close waits for in-flight mirror writes, then releases connections in
// reverse order of acquisition.
func (t *Traveler) Close() {
	if t.Bookings != nil {
		t.Bookings.Wait()
	}
	for i := len(t.closers) - 1; i >= 0; i-- {
		t.closers[i]()
	}
	t.closers = nil
}

func (t *Traveler) bookingCache(ctx context.Context) (ports.BookingCache, error) {
	switch t.Config.BookingCacheBackend {
	case config.CacheBackendRedis:
		client, err := redisrepo.NewClient(ctx, redisrepo.Options{
			Addr:     t.Config.RedisAddr,
			Password: t.Config.RedisPassword,
			DB:       t.Config.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		t.closers = append(t.closers, func() { _ = client.Close() })
		t.Logger.Info("booking cache: redis", zap.String("addr", t.Config.RedisAddr), zap.String("key", t.Config.BookingCacheKey))
		return redisrepo.NewBookingCache(client, t.Config.BookingCacheKey)
	default:
		cache, err := filestore.NewBookingCache(t.Config.BookingCacheDir, t.Config.BookingCacheKey)
		if err != nil {
			return nil, err
		}
		t.Logger.Info("booking cache: file", zap.String("path", cache.Path()))
		return cache, nil
	}
}

func loadCatalog(ctx context.Context, path string) (domain.Catalog, error) {
	src, err := catalog.NewFileSource(path)
	if err != nil {
		return domain.Catalog{}, err
	}
	return src.Load(ctx)
}
