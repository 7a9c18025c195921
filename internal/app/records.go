package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/njprem/Fit_city_Booking/internal/config"
	"github.com/njprem/Fit_city_Booking/internal/logging"
	"github.com/njprem/Fit_city_Booking/internal/metrics"
	"github.com/njprem/Fit_city_Booking/internal/repository/filestore"
	miniorepo "github.com/njprem/Fit_city_Booking/internal/repository/minio"
	"github.com/njprem/Fit_city_Booking/internal/repository/objectstore"
	"github.com/njprem/Fit_city_Booking/internal/repository/ports"
	"github.com/njprem/Fit_city_Booking/internal/repository/postgres"
	"github.com/njprem/Fit_city_Booking/internal/service"
)

// Records wires the booking record service behind the configured backend.
type Records struct {
	Config  config.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Service *service.BookingRecordService

	closers []func()
}

func NewRecords(ctx context.Context, cfg config.Config) (*Records, error) {
	if err := cfg.ValidateRecords(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, flush, err := logging.New(logging.Options{
		Level:        cfg.LogLevel,
		Encoding:     cfg.LogEncoding,
		LogstashAddr: cfg.LogstashTCPAddr,
		Service:      "fitcity-records",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	r := &Records{Config: cfg, Logger: logger, Metrics: metrics.New("fitcity_records")}
	r.closers = append(r.closers, flush)

	repo, err := r.repository(ctx)
	if err != nil {
		r.Close()
		return nil, err
	}
	svc, err := service.NewBookingRecordService(repo, logger, r.Metrics)
	if err != nil {
		r.Close()
		return nil, err
	}
	r.Service = svc
	return r, nil
}

func (r *Records) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
	r.closers = nil
}

func (r *Records) repository(ctx context.Context) (ports.BookingRecordRepository, error) {
	cfg := r.Config
	switch cfg.RecordStoreBackend {
	case config.RecordBackendPostgres:
		db, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		r.closers = append(r.closers, func() { _ = db.Close() })
		repo := postgres.NewBookingRecordRepo(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("prepare booking_record table: %w", err)
		}
		r.Logger.Info("record store: postgres")
		return repo, nil
	case config.RecordBackendMinIO:
		client, err := miniorepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
		if err != nil {
			return nil, fmt.Errorf("init minio: %w", err)
		}
		storage := miniorepo.NewStorage(client)
		if err := storage.EnsureBucket(ctx, cfg.MinIOBucketBookings); err != nil {
			return nil, fmt.Errorf("ensure bucket %s: %w", cfg.MinIOBucketBookings, err)
		}
		r.Logger.Info("record store: minio", zap.String("endpoint", cfg.MinIOEndpoint), zap.String("bucket", cfg.MinIOBucketBookings))
		return objectstore.NewBookingRecordRepo(storage, cfg.MinIOBucketBookings)
	default:
		repo, err := filestore.NewBookingRecordRepo(cfg.RecordStorePath)
		if err != nil {
			return nil, err
		}
		r.Logger.Info("record store: file", zap.String("path", cfg.RecordStorePath))
		return repo, nil
	}
}
