package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tj309c/FLWSTradingLiveUpdates/internal/usecase"
	"github.com/tj309c/FLWSTradingLiveUpdates/pkg/config"
	xhttp "github.com/tj309c/FLWSTradingLiveUpdates/pkg/http"
	applogger "github.com/tj309c/FLWSTradingLiveUpdates/pkg/logger"
)

// App encapsulates the entire application lifecycle: the ops HTTP server
// plus the sequential monitor loop. Cycles never overlap; a slow cycle
// simply delays the next tick.
type App struct {
	cfg        *config.Config
	monitor    *usecase.Monitor
	handler    xhttp.Handler
	log        *applogger.Logger
	httpServer *xhttp.Server
	closers    []io.Closer
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, monitor *usecase.Monitor, handler xhttp.Handler, log *applogger.Logger) *App {
	return &App{
		cfg:     cfg,
		monitor: monitor,
		handler: handler,
		log:     log,
	}
}

// AddCloser registers a resource to close on shutdown (Kafka producer,
// Redis cache).
func (a *App) AddCloser(c io.Closer) { a.closers = append(a.closers, c) }

// Run starts the application and blocks until the session ends, the single
// cycle completes, or a signal arrives.
func (a *App) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("ops server listening", applogger.Int("port", a.cfg.Server.Port))

	a.runLoop(ctx)

	return a.shutdown()
}

// runLoop executes monitor cycles until the context is done or the
// configured session duration elapses.
func (a *App) runLoop(ctx context.Context) {
	if a.cfg.Monitor.SessionDuration > 0 && !a.cfg.Monitor.RunOnce {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Monitor.SessionDuration)
		defer cancel()
	}

	a.log.Info("monitor loop started",
		applogger.String("symbol", a.cfg.Monitor.Symbol),
		applogger.Duration("interval", a.cfg.Monitor.Interval),
		applogger.Duration("session_duration", a.cfg.Monitor.SessionDuration),
		applogger.Bool("run_once", a.cfg.Monitor.RunOnce))

	// First cycle fires immediately, then every interval.
	a.cycle(ctx)
	if a.cfg.Monitor.RunOnce {
		return
	}

	ticker := time.NewTicker(a.cfg.Monitor.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			a.log.Info("monitor loop finished", applogger.String("reason", ctx.Err().Error()))
			return
		case <-ticker.C:
			a.cycle(ctx)
		}
	}
}

func (a *App) cycle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	report := a.monitor.RunCycle(ctx)
	if !report.OK {
		a.log.Warn("cycle produced no alert", applogger.Strings("errors", report.Errors))
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.log.Warn("close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
