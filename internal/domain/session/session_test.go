package session

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Ahsan786123/solar-time-app/internal/domain/location"
	"github.com/Ahsan786123/solar-time-app/internal/domain/solartime"
)

func TestSessionLocatesAndTicks(t *testing.T) {
	rec := &recordingRenderer{}
	s := newTestSession(location.Fixed(solartime.Coordinate{Latitude: 23.81, Longitude: 90.5}), rec)
	defer s.Close()

	require.True(t, s.RequestLocation(context.Background()))
	require.Eventually(t, func() bool { return rec.tickCount() >= 3 }, time.Second, time.Millisecond)

	require.Equal(t, StateReady, s.State())
	require.True(t, s.Running())
	coord, ok := s.Coordinate()
	require.True(t, ok)
	require.Equal(t, 90.5, coord.Longitude)

	frame := rec.lastFrame()
	require.Equal(t, "2024-01-15", frame.Date)
	require.Equal(t, "12:00:00", frame.CurrentIST)
	require.Equal(t, "12:32:00", frame.LocalSolarTime)
	require.Equal(t, "12:32:00", frame.SolarNoon)
	require.Equal(t, "12:12:00", frame.ZawaalStart)
	require.Equal(t, "12:52:00", frame.ZawaalEnd)
	require.Equal(t, "32.0 minutes ahead", frame.Details.TimeDifference)
	require.Equal(t, 1, rec.loadingCount())
	require.Equal(t, "8.00° East", rec.lastDetails().LongitudeDifference)
}

func TestSessionDeniedThenRetrySucceeds(t *testing.T) {
	rec := &recordingRenderer{}
	acquirer := &scriptedAcquirer{results: []acquireResult{
		{err: location.PermissionDenied(nil)},
		{coord: solartime.Coordinate{Latitude: 19.07, Longitude: 72.5}},
	}}
	s := newTestSession(acquirer, rec)
	defer s.Close()

	require.True(t, s.RequestLocation(context.Background()))
	require.Eventually(t, func() bool { return rec.lastFailure() != "" }, time.Second, time.Millisecond)
	require.Equal(t, StateFailed, s.State())
	require.Contains(t, rec.lastFailure(), "Please allow location access")
	require.False(t, s.Running())
	require.False(t, s.Start())

	require.True(t, s.Retry(context.Background()))
	require.Eventually(t, func() bool { return rec.tickCount() > 0 }, time.Second, time.Millisecond)
	require.Equal(t, StateReady, s.State())
	require.Equal(t, "11:20:00", rec.lastFrame().LocalSolarTime)
	require.Equal(t, "40.0 minutes behind", rec.lastFrame().Details.TimeDifference)
	require.Equal(t, 2, rec.loadingCount())
}

func TestSessionIgnoresConcurrentRequests(t *testing.T) {
	release := make(chan struct{})
	acquirer := location.AcquirerFunc(func(ctx context.Context) (solartime.Coordinate, error) {
		<-release
		return solartime.Coordinate{Longitude: 82.5}, nil
	})
	s := newTestSession(acquirer, &recordingRenderer{})
	defer s.Close()

	require.True(t, s.RequestLocation(context.Background()))
	require.False(t, s.RequestLocation(context.Background()))
	require.Equal(t, StateLoading, s.State())

	close(release)
	require.Eventually(t, func() bool { return s.State() == StateReady }, time.Second, time.Millisecond)
}

func TestSessionStartStopAreIdempotent(t *testing.T) {
	rec := &recordingRenderer{}
	s := newTestSession(location.Fixed(solartime.Coordinate{Longitude: 82.5}), rec)
	defer s.Close()

	require.False(t, s.Start(), "no coordinate yet")
	require.False(t, s.Stop())

	s.RequestLocation(context.Background())
	require.Eventually(t, s.Running, time.Second, time.Millisecond)

	require.False(t, s.Start())
	require.True(t, s.Stop())
	require.False(t, s.Stop())
	require.False(t, s.Running())

	ticks := rec.tickCount()
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, ticks, rec.tickCount())
}

func TestSessionVisibility(t *testing.T) {
	rec := &recordingRenderer{}
	s := newTestSession(location.Fixed(solartime.Coordinate{Longitude: 82.5}), rec)
	defer s.Close()

	s.SetVisible(false)
	s.RequestLocation(context.Background())
	require.Eventually(t, func() bool { return s.State() == StateReady }, time.Second, time.Millisecond)
	require.False(t, s.Running())
	require.Zero(t, rec.tickCount())

	s.SetVisible(true)
	require.True(t, s.Running())
	require.Eventually(t, func() bool { return rec.tickCount() >= 2 }, time.Second, time.Millisecond)

	s.SetVisible(false)
	require.False(t, s.Running())
	ticks := rec.tickCount()
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, ticks, rec.tickCount())
}

func TestSessionCloseCancelsAcquisition(t *testing.T) {
	rec := &recordingRenderer{}
	started := make(chan struct{})
	acquirer := location.AcquirerFunc(func(ctx context.Context) (solartime.Coordinate, error) {
		close(started)
		<-ctx.Done()
		return solartime.Coordinate{}, ctx.Err()
	})
	s := newTestSession(acquirer, rec)

	s.RequestLocation(context.Background())
	<-started
	s.Close()
	s.Close()

	require.Empty(t, rec.lastFailure())
	require.False(t, s.RequestLocation(context.Background()))
}

func newTestSession(acquirer location.Acquirer, renderer Renderer) *Session {
	clock := fixedClock{now: solartime.NewWallClock(2024, time.January, 15, 12, 0, 0)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(Config{RefreshInterval: 2 * time.Millisecond}, solartime.NewCalculator(clock), acquirer, renderer, logger)
}

type fixedClock struct {
	now solartime.WallClock
}

func (c fixedClock) Now() solartime.WallClock { return c.now }

type acquireResult struct {
	coord solartime.Coordinate
	err   error
}

type scriptedAcquirer struct {
	mu      sync.Mutex
	results []acquireResult
	calls   int
}

func (a *scriptedAcquirer) Acquire(context.Context) (solartime.Coordinate, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	res := a.results[a.calls]
	a.calls++
	return res.coord, res.err
}

type recordingRenderer struct {
	mu       sync.Mutex
	loadings int
	details  solartime.Details
	frames   []solartime.Frame
	failure  string
}

func (r *recordingRenderer) Loading() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadings++
}

func (r *recordingRenderer) Located(_ solartime.Coordinate, details solartime.Details) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.details = details
}

func (r *recordingRenderer) Tick(frame solartime.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, frame)
}

func (r *recordingRenderer) Failed(message string, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure = message
}

func (r *recordingRenderer) tickCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

func (r *recordingRenderer) lastFrame() solartime.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames[len(r.frames)-1]
}

func (r *recordingRenderer) lastDetails() solartime.Details {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.details
}

func (r *recordingRenderer) lastFailure() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failure
}

func (r *recordingRenderer) loadingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadings
}

type closeAwareRenderer struct {
	recordingRenderer
	closed atomic.Bool
	late   atomic.Int32
}

func (r *closeAwareRenderer) Loading() {
	if r.closed.Load() {
		r.late.Add(1)
	}
	r.recordingRenderer.Loading()
}

func TestSessionRequestRacingClose(t *testing.T) {
	for i := 0; i < 500; i++ {
		rec := &closeAwareRenderer{}
		s := newTestSession(location.Fixed(solartime.Coordinate{Longitude: 82.5}), rec)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.RequestLocation(context.Background())
		}()
		go func() {
			defer wg.Done()
			s.Close()
			rec.closed.Store(true)
		}()
		wg.Wait()

		require.Zero(t, rec.late.Load(), "loading rendered after close returned")
		require.False(t, s.Running())
		require.False(t, s.RequestLocation(context.Background()))
	}
}
