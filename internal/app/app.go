package app

import (
	"context"
	"fmt"

	"github.com/yungbote/gymcoach/internal/config"
	"github.com/yungbote/gymcoach/internal/gateway"
	httpapi "github.com/yungbote/gymcoach/internal/http"
	"github.com/yungbote/gymcoach/internal/observability"
	"github.com/yungbote/gymcoach/internal/platform/logger"
	"github.com/yungbote/gymcoach/internal/session"
)

const serviceName = "gymcoach"

type App struct {
	Log      *logger.Logger
	Config   *config.Config
	Gateway  *gateway.Client
	Registry *session.Registry
	Metrics  *observability.Metrics

	server       *httpapi.Server
	pruner       *Pruner
	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: serviceName,
		Environment: cfg.Env,
	})
	metrics := observability.Init()

	gw, err := NewGateway(cfg, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init gateway: %w", err)
	}

	reg := session.NewRegistry(gw, log, SessionOptions(cfg))
	pruner, err := NewPruner(log, reg, cfg.Session)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init pruner: %w", err)
	}

	srv := httpapi.NewServer(wireRouter(cfg, log, reg, metrics), httpapi.ServerOptions{
		Addr:              cfg.HTTP.Addr,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout.Duration,
		IdleTimeout:       cfg.HTTP.IdleTimeout.Duration,
	})

	return &App{
		Log:          log,
		Config:       cfg,
		Gateway:      gw,
		Registry:     reg,
		Metrics:      metrics,
		server:       srv,
		pruner:       pruner,
		otelShutdown: otelShutdown,
	}, nil
}

// NewGateway builds the backend client from config. It is shared by the
// API server and the bot.
func NewGateway(cfg *config.Config, log *logger.Logger) (*gateway.Client, error) {
	return gateway.New(gateway.Options{
		BaseURL:     cfg.API.BaseURL,
		APIKey:      cfg.API.APIKey,
		ChatPath:    cfg.API.ChatPath,
		Timeout:     cfg.API.Timeout.Duration,
		Constraints: Constraints(cfg),
		Logger:      log,
	})
}

func Constraints(cfg *config.Config) gateway.Constraints {
	return gateway.Constraints{
		MaxSizeBytes:      cfg.API.MaxUploadBytes,
		AllowedMimePrefix: cfg.API.AllowedMimePrefix,
	}
}

func SessionOptions(cfg *config.Config) session.Options {
	return session.Options{
		Constraints: Constraints(cfg),
		PreviewSize: cfg.Session.PreviewSize,
	}
}

// Run serves until ctx is done, then drains in-flight requests within the
// configured shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	a.pruner.Start()
	defer a.pruner.Stop()

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("session API listening", "addr", a.server.Addr())
		errCh <- a.server.Run()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.HTTP.ShutdownTimeout.Duration)
		defer cancel()
		a.Log.Info("shutting down", "live_sessions", a.Registry.Len())
		_ = a.server.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		return err
	}
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Config.HTTP.ShutdownTimeout.Duration)
		_ = a.otelShutdown(ctx)
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
