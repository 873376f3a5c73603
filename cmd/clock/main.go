package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ahsan786123/solar-time-app/internal/domain/location"
	"github.com/Ahsan786123/solar-time-app/internal/domain/session"
	"github.com/Ahsan786123/solar-time-app/internal/domain/solartime"
	"github.com/Ahsan786123/solar-time-app/internal/infra/config"
	"github.com/Ahsan786123/solar-time-app/internal/infra/geoip"
	"github.com/Ahsan786123/solar-time-app/internal/infra/locationstore"
	"github.com/Ahsan786123/solar-time-app/internal/interface/terminal"
	"github.com/Ahsan786123/solar-time-app/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("clock stopped with error: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logs := logger.NewWithWriter(os.Stderr, os.Getenv("LOG_LEVEL"))

	clock, err := solartime.NewReferenceClock()
	if err != nil {
		return fmt.Errorf("load reference clock: %w", err)
	}
	calc := solartime.NewCalculator(clock)

	locations := location.NewService(location.Config{
		Timeout: cfg.Location.Timeout,
		MaxAge:  cfg.Location.MaxAge,
	}, locationstore.NewMemoryStore(), logs)

	var source location.Acquirer
	switch {
	case cfg.Location.HasFixedCoordinate():
		source = location.Fixed(solartime.Coordinate{Latitude: *cfg.Location.Latitude, Longitude: *cfg.Location.Longitude})
	case cfg.Location.GeoIPEnabled:
		source = geoip.NewClient(cfg.Location.GeoIPBaseURL, cfg.Location.Timeout).Acquirer("")
	default:
		source = location.Unsupported()
	}

	sess := session.New(
		session.Config{RefreshInterval: cfg.Solar.RefreshInterval},
		calc,
		locations.Bind("self", source),
		terminal.NewRenderer(os.Stdout),
		logs,
	)
	defer sess.Close()

	fmt.Fprintln(os.Stdout, "Commands: h hide, s show, r retry, q quit")
	sess.RequestLocation(ctx)
	err = terminal.Run(ctx, os.Stdin, sess, logs)
	fmt.Fprintln(os.Stdout)
	return err
}
