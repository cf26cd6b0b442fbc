package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yijuchen/cwabot/internal/infra/config"
	lineiface "github.com/yijuchen/cwabot/internal/interface/line"
	"github.com/yijuchen/cwabot/internal/scheduler"
)

// App encapsulates the HTTP server and push scheduler lifecycle.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	server  *http.Server
	sched   *scheduler.Scheduler
	webhook *lineiface.Handler
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, sched *scheduler.Scheduler, webhook *lineiface.Handler) *App {
	return &App{
		cfg:     cfg,
		logger:  logger.With("component", "bootstrap"),
		server:  server,
		sched:   sched,
		webhook: webhook,
	}
}

// Run starts the HTTP server and the scheduler, then blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	schedCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	if a.cfg.Push.Enabled {
		go a.sched.Run(schedCtx)
	} else {
		a.logger.Info("push scheduler disabled")
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		stopScheduler()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		// Webhook events already acked to LINE still deserve their replies.
		if err := a.webhook.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("webhook drain interrupted", "error", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
