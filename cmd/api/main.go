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

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(config.Load()); err != nil {
		log.Fatalf("fitcity-api: %v", err)
	}
}

// run serves until a signal arrives or the listener fails. Either way the
// server is shut down and the deferred Close runs before returning.
func run(cfg config.Config) error {
	traveler, err := app.NewTraveler(context.Background(), cfg, "fitcity-api")
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}
	defer traveler.Close()
	logger := traveler.Logger

	e := httpx.NewRouter(cfg.AllowOrigins, logger, traveler.Metrics)
	httpx.RegisterSwagger(e, cfg.SwaggerPath)
	httpx.RegisterCatalog(e, traveler.Store)
	httpx.RegisterPreferences(e, traveler.Store)
	httpx.RegisterBookings(e, traveler.Store, traveler.Bookings)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("traveler api listening", zap.String("port", cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	var stopErr error
	select {
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case stopErr = <-serveErr:
		logger.Error("server stopped", zap.Error(stopErr))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	// traveler.Close waits for detached mirror writes before flushing logs.
	return stopErr
}
