// Package session owns one live solar clock: the acquired coordinate, the
// periodic refresh and the renderer that displays each frame.
//
// A session moves idle -> loading -> ready, or loading -> failed. A failed
// session recovers only through an explicit Retry. The refresh timer runs
// only while the session is visible and has a coordinate.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ahsan786123/solar-time-app/internal/domain/location"
	"github.com/Ahsan786123/solar-time-app/internal/domain/solartime"
)

// State describes where a session is in its lifecycle.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// DefaultRefreshInterval is the display refresh period.
const DefaultRefreshInterval = time.Second

// Renderer displays session output. Calls arrive from the session's own
// goroutines; implementations must not call Stop or Close from Tick.
type Renderer interface {
	Loading()
	Located(coord solartime.Coordinate, details solartime.Details)
	Tick(frame solartime.Frame)
	Failed(message string, err error)
}

// Config controls the refresh cadence.
type Config struct {
	RefreshInterval time.Duration
}

// Session is the controlling context for one display surface.
type Session struct {
	id       string
	cfg      Config
	calc     *solartime.Calculator
	acquirer location.Acquirer
	renderer Renderer
	logger   *slog.Logger

	mu            sync.Mutex
	state         State
	coord         solartime.Coordinate
	details       solartime.Details
	located       bool
	visible       bool
	closed        bool
	acquiring     bool
	cancelAcquire context.CancelFunc
	stopTicker    context.CancelFunc
	tickerDone    chan struct{}
	wg            sync.WaitGroup
}

// New builds an idle, visible session.
func New(cfg Config, calc *solartime.Calculator, acquirer location.Acquirer, renderer Renderer, logger *slog.Logger) *Session {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultRefreshInterval
	}
	id := uuid.NewString()
	return &Session{
		id:       id,
		cfg:      cfg,
		calc:     calc,
		acquirer: acquirer,
		renderer: renderer,
		logger:   logger.With("component", "session", "session_id", id),
		state:    StateIdle,
		visible:  true,
	}
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Coordinate returns the acquired coordinate, if any.
func (s *Session) Coordinate() (solartime.Coordinate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coord, s.located
}

// Running reports whether the refresh timer is active.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopTicker != nil
}

// RequestLocation starts a one-shot asynchronous acquisition. It returns
// false without doing anything when one is already in flight or the session
// is closed. Any previous coordinate is discarded and the timer stopped.
func (s *Session) RequestLocation(ctx context.Context) bool {
	s.mu.Lock()
	if s.closed || s.acquiring {
		s.mu.Unlock()
		return false
	}
	s.acquiring = true
	s.located = false
	s.state = StateLoading
	acquireCtx, cancel := context.WithCancel(ctx)
	s.cancelAcquire = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	s.Stop()

	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		s.wg.Done()
		cancel()
		return false
	}
	s.renderer.Loading()

	go s.acquire(acquireCtx, cancel)
	return true
}

// Retry re-runs acquisition from scratch after a failure.
func (s *Session) Retry(ctx context.Context) bool {
	s.logger.Info("location retry requested")
	return s.RequestLocation(ctx)
}

func (s *Session) acquire(ctx context.Context, cancel context.CancelFunc) {
	defer s.wg.Done()
	defer cancel()

	coord, err := s.acquirer.Acquire(ctx)

	s.mu.Lock()
	s.acquiring = false
	s.cancelAcquire = nil
	if s.closed {
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.state = StateFailed
		s.mu.Unlock()
		s.logger.Warn("location detection failed", "code", location.Code(err), "error", err)
		s.renderer.Failed(location.Message(err), err)
		return
	}
	details := solartime.Describe(coord)
	s.coord = coord
	s.details = details
	s.located = true
	s.state = StateReady
	s.mu.Unlock()

	s.logger.Info("location detected", "latitude", coord.Latitude, "longitude", coord.Longitude)
	s.renderer.Located(coord, details)
	s.Start()
}

// Start renders a frame immediately and then once per refresh interval. It
// is a no-op returning false when the timer already runs, the session is
// hidden or closed, or no coordinate is known yet.
func (s *Session) Start() bool {
	s.mu.Lock()
	if s.closed || !s.located || !s.visible || s.stopTicker != nil {
		s.mu.Unlock()
		return false
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.stopTicker = cancel
	s.tickerDone = done
	s.mu.Unlock()

	s.render()
	go s.run(ctx, done)
	return true
}

// Stop halts the refresh timer and waits for an in-progress tick to finish.
// It is safe to call repeatedly and reports whether a timer was stopped.
func (s *Session) Stop() bool {
	s.mu.Lock()
	cancel, done := s.stopTicker, s.tickerDone
	s.stopTicker = nil
	s.tickerDone = nil
	s.mu.Unlock()

	if cancel == nil {
		return false
	}
	cancel()
	<-done
	return true
}

// SetVisible stops the timer while the display is hidden and restarts it
// when the display comes back.
func (s *Session) SetVisible(visible bool) {
	s.mu.Lock()
	changed := s.visible != visible
	s.visible = visible
	s.mu.Unlock()

	if changed {
		s.logger.Debug("visibility changed", "visible", visible)
	}
	if visible {
		s.Start()
		return
	}
	s.Stop()
}

// Close stops the timer, cancels any in-flight acquisition and waits for the
// session's goroutines to exit.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	cancel := s.cancelAcquire
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.Stop()
	s.wg.Wait()
}

func (s *Session) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.cfg.RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.render()
		}
	}
}

func (s *Session) render() {
	s.mu.Lock()
	coord, details, ok := s.coord, s.details, s.located
	s.mu.Unlock()
	if !ok {
		return
	}
	s.renderer.Tick(solartime.Render(s.calc.Snapshot(coord.Longitude), details))
}
