package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/Ahsan786123/solar-time-app/internal/domain/location"
	"github.com/Ahsan786123/solar-time-app/internal/domain/solartime"
	"github.com/Ahsan786123/solar-time-app/internal/infra/config"
	"github.com/Ahsan786123/solar-time-app/internal/infra/geoip"
	"github.com/Ahsan786123/solar-time-app/internal/infra/locationstore"
	httpiface "github.com/Ahsan786123/solar-time-app/internal/interface/http"
)

func provideLocationConfig(cfg *config.Config) location.Config {
	return location.Config{
		Timeout: cfg.Location.Timeout,
		MaxAge:  cfg.Location.MaxAge,
	}
}

func provideReferenceClock() (*solartime.ReferenceClock, error) {
	return solartime.NewReferenceClock()
}

func provideCalculator(clock *solartime.ReferenceClock) *solartime.Calculator {
	return solartime.NewCalculator(clock)
}

func provideLocator(cfg *config.Config, logger *slog.Logger) httpiface.Locator {
	if !cfg.Location.GeoIPEnabled {
		logger.Info("ip geolocation disabled")
		return nil
	}
	return geoip.NewClient(cfg.Location.GeoIPBaseURL, cfg.Location.Timeout)
}

func provideLocationStore(cfg *config.Config, logger *slog.Logger) (location.Store, func()) {
	noop := func() {}
	if !cfg.Location.Cache.Enabled {
		return locationstore.NewMemoryStore(), noop
	}
	opt, err := buildValkeyOptions(cfg.Location.Cache.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return locationstore.NewMemoryStore(), noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return locationstore.NewMemoryStore(), noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return locationstore.NewMemoryStore(), noop
	}
	logger.Info("location valkey store enabled", "addr", cfg.Location.Cache.Addr)
	return locationstore.NewValkeyStore(client, cfg.Location.Cache.Prefix), client.Close
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
