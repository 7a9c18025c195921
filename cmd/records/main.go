package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/njprem/Fit_city_Booking/internal/app"
	"github.com/njprem/Fit_city_Booking/internal/config"
	httpx "github.com/njprem/Fit_city_Booking/internal/transport/http"
)

func main() {
	if err := run(config.Load()); err != nil {
		log.Fatalf("fitcity-records: %v", err)
	}
}

func run(cfg config.Config) error {
	records, err := app.NewRecords(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("initialize record service: %w", err)
	}
	defer records.Close()
	logger := records.Logger

	e := httpx.NewRouter(cfg.AllowOrigins, logger, records.Metrics)
	httpx.RegisterBookingRecords(e, records.Service)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("booking record service listening",
			zap.String("port", cfg.RecordsPort),
			zap.String("backend", cfg.RecordStoreBackend),
		)
		if err := e.Start(":" + cfg.RecordsPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	var stopErr error
	select {
	case <-quit:
	case stopErr = <-serveErr:
		logger.Error("server stopped", zap.Error(stopErr))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	return stopErr
}
