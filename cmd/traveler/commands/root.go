package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/njprem/Fit_city_Booking/internal/app"
	"github.com/njprem/Fit_city_Booking/internal/config"
)

type rootOptions struct {
	catalogPath string
	cacheDir    string
	remoteURL   string
	logLevel    string

	traveler *app.Traveler
}

func Execute() error {
	root, opts := newRootCmd()
	defer opts.close()
	return root.Execute()
}

// close waits for mirror writes; it also runs when a command failed.
func (o *rootOptions) close() {
	if o.traveler != nil {
		o.traveler.Close()
		o.traveler = nil
	}
}

// newRootCmd builds the traveler CLI. Each invocation hydrates the booking
// store from the configured cache.
func newRootCmd() (*cobra.Command, *rootOptions) {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "traveler",
		Short:        "Browse destinations and manage trip bookings",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			flags := cmd.Flags()
			if flags.Changed("catalog") {
				cfg.CatalogPath = opts.catalogPath
			}
			if flags.Changed("cache-dir") {
				cfg.BookingCacheBackend = config.CacheBackendFile
				cfg.BookingCacheDir = opts.cacheDir
			}
			if flags.Changed("remote") {
				cfg.RemoteBookingsURL = opts.remoteURL
			}
			cfg.LogLevel = opts.logLevel
			cfg.LogEncoding = "console"

			t, err := app.NewTraveler(context.Background(), cfg, "fitcity-cli")
			if err != nil {
				return err
			}
			opts.traveler = t
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.catalogPath, "catalog", "", "catalog YAML file (default $CATALOG_PATH)")
	pf.StringVar(&opts.cacheDir, "cache-dir", "", "booking cache directory (default ~/.fitcity)")
	pf.StringVar(&opts.remoteURL, "remote", "", "booking record service URL; empty disables the mirror")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level")

	root.AddCommand(
		destinationsCmd(opts),
		optionsCmd(opts),
		packagesCmd(opts),
		bookCmd(opts),
		bookingsCmd(opts),
		cancelCmd(opts),
		profileCmd(opts),
		remoteCmd(opts),
	)
	return root, opts
}
