package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Ahsan786123/solar-time-app/internal/domain/solartime"
	"github.com/Ahsan786123/solar-time-app/internal/infra/config"
)

const shutdownTimeout = 10 * time.Second

// App encapsulates the HTTP server lifecycle.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	server *http.Server
	clock  *solartime.ReferenceClock
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, clock *solartime.ReferenceClock) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, clock: clock}
}

// Run starts the HTTP server and blocks until ctx is cancelled or the server
// fails. Open streams are closed by the shutdown deadline.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting",
			"address", a.server.Addr,
			"reference_zone", a.clock.Location().String(),
			"reference_time", a.clock.Now().String(),
		)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutdown signal received")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				a.logger.Warn("graceful shutdown timed out, closing open streams")
				return a.server.Close()
			}
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
