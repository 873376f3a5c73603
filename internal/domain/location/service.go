package location

import (
	"context"
	"log/slog"
	"time"

	"github.com/Ahsan786123/solar-time-app/internal/domain/solartime"
	"github.com/Ahsan786123/solar-time-app/pkg/metrics"
)

// Fix is a coordinate stamped with the time it was acquired.
type Fix struct {
	Coordinate solartime.Coordinate `json:"coordinate"`
	AcquiredAt time.Time            `json:"acquiredAt"`
}

// Store defines the cache contract for recently acquired fixes.
type Store interface {
	Get(ctx context.Context, key string) (Fix, bool, error)
	Save(ctx context.Context, key string, fix Fix, ttl time.Duration) error
}

// Config bounds each acquisition.
type Config struct {
	// Timeout caps a single acquisition. Zero disables the cap.
	Timeout time.Duration
	// MaxAge is the oldest cached fix that may be reused. Zero disables reuse.
	MaxAge time.Duration
}

// Service runs acquisitions under the configured timeout and staleness rules.
type Service struct {
	cfg    Config
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires the acquisition policy to a fix cache.
func NewService(cfg Config, store Store, logger *slog.Logger) *Service {
	return &Service{
		cfg:    cfg,
		store:  store,
		logger: logger.With("component", "location.service"),
		now:    time.Now,
	}
}

// Acquire returns a fresh enough cached fix for key or runs source. Failures
// are classified into the package codes and never cached; there is no
// automatic retry.
func (s *Service) Acquire(ctx context.Context, key string, source Acquirer) (solartime.Coordinate, error) {
	if source == nil {
		return solartime.Coordinate{}, ErrUnsupported
	}
	if fix, ok := s.cached(ctx, key); ok {
		s.logger.Debug("location served from cache", "key", key, "age", s.now().Sub(fix.AcquiredAt).String())
		metrics.ObserveLocation("cached")
		return fix.Coordinate, nil
	}

	acquireCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	coord, err := source.Acquire(acquireCtx)
	if err == nil {
		err = checkCoordinate(coord)
	}
	if err != nil {
		err = classify(err)
		s.logger.Warn("location acquisition failed", "key", key, "code", Code(err), "error", err)
		metrics.ObserveLocation(Code(err))
		return solartime.Coordinate{}, err
	}

	metrics.ObserveLocation("ok")
	s.remember(ctx, key, coord)
	return coord, nil
}

// Bind fixes key and source so the result can be handed to a session.
func (s *Service) Bind(key string, source Acquirer) Acquirer {
	return AcquirerFunc(func(ctx context.Context) (solartime.Coordinate, error) {
		return s.Acquire(ctx, key, source)
	})
}

func (s *Service) cached(ctx context.Context, key string) (Fix, bool) {
	if s.store == nil || key == "" || s.cfg.MaxAge <= 0 {
		return Fix{}, false
	}
	fix, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("location cache read failed", "key", key, "error", err)
		return Fix{}, false
	}
	if !ok || s.now().Sub(fix.AcquiredAt) > s.cfg.MaxAge {
		return Fix{}, false
	}
	return fix, true
}

func (s *Service) remember(ctx context.Context, key string, coord solartime.Coordinate) {
	if s.store == nil || key == "" || s.cfg.MaxAge <= 0 {
		return
	}
	fix := Fix{Coordinate: coord, AcquiredAt: s.now()}
	if err := s.store.Save(ctx, key, fix, s.cfg.MaxAge); err != nil {
		s.logger.Warn("location cache write failed", "key", key, "error", err)
	}
}
