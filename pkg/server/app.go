package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"PumpStat/pkg/config"
	xhttp "PumpStat/pkg/http"
	applogger "PumpStat/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	httpServer *xhttp.Server
	logger     *applogger.Logger
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, httpServer *xhttp.Server, logger *applogger.Logger) *App {
	return &App{
		cfg:        cfg,
		httpServer: httpServer,
		logger:     logger,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("pumpstat started",
		applogger.String("env", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
		applogger.Int("feed_sources", len(a.cfg.Sources.RSS.URLs)),
		applogger.Bool("ai_configured", a.cfg.AI.Configured()),
		applogger.Bool("telegram_configured", a.cfg.Telegram.Configured()),
	)

	<-ctx.Done()
	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	if err := a.httpServer.Stop(context.Background()); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
		return err
	}
	a.logger.Info("shutdown complete")
	return nil
}
