// bookingd serves an in-memory booking model over the Smart Core BookingApi.
package main

import (
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smart-core-os/sc-period/pkg/server"
	"github.com/smart-core-os/sc-period/pkg/trait/booking"
)

var (
	cfgFile string
	name    string
	listen  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "bookingd",
	Short: "Serve bookings for a Smart Core device",
	Long: `bookingd serves the Smart Core BookingApi for a single bookable device.
Bookings are kept in memory, optionally seeded from a YAML config file.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "YAML config file with the device name and initial bookings")
	rootCmd.Flags().StringVar(&name, "name", "", "device name, overrides the config file")
	rootCmd.Flags().StringVar(&listen, "listen", "", "address to serve on, e.g. tcp://localhost:23557")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every call")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}
	if name != "" {
		cfg.Name = name
	}
	if listen != "" {
		cfg.Listen = listen
	}
	address, err := url.Parse(cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen address: %w", err)
	}
	initial, err := cfg.initialBookings()
	if err != nil {
		return err
	}

	model := booking.NewModel(
		booking.WithLogger(logger.Named("booking")),
		booking.WithInitialBooking(initial...),
	)
	for _, conflict := range model.Conflicts(cfg.Name).Items() {
		logger.Warn("initial bookings overlap", zap.Stringer("period", conflict))
	}

	s := server.NewServer(cfg.Name, server.NewAuthProvider(nil, logger), logger)
	s.Register(booking.NewModelServer(model))
	done, err := s.Startup(address)
	if err != nil {
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case <-stop:
		s.Shutdown()
		return <-done
	case err := <-done:
		return err
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
