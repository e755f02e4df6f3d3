package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	sphttp "github.com/yungbote/studyplanner-backend/internal/http"
	"github.com/yungbote/studyplanner-backend/internal/observability"
	"github.com/yungbote/studyplanner-backend/internal/platform/logger"
)

const Version = "0.1.0"

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Services Services
	Metrics  *observability.Metrics
	Server   *sphttp.Server

	otelShutdown func(context.Context) error
}

// New wires the app from cfg. A missing API key fails here, before anything
// listens.
func New(ctx context.Context, cfg Config) (*App, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	a, err := NewWithLogger(ctx, log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}
	return a, nil
}

func NewWithLogger(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.LogMode == "prod" || cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "studyplanner-backend",
		Environment: cfg.LogMode,
		Version:     Version,
	})
	metrics := observability.Init(log)

	svc, err := wireServices(ctx, log, cfg, metrics)
	if err != nil {
		return nil, err
	}
	handlers := wireHandlers(log, cfg, svc)
	server := sphttp.NewServer(cfg.Addr(), log, sphttp.RouterConfig{
		Log:              log,
		Metrics:          metrics,
		AllowedOrigins:   cfg.AllowedOrigins,
		MaxRequestBytes:  cfg.MaxRequestBytes,
		Tracing:          otelShutdown != nil,
		HealthHandler:    handlers.Health,
		StudyPlanHandler: handlers.StudyPlan,
		QuizHandler:      handlers.Quiz,
		ProgressHandler:  handlers.Progress,
	})

	return &App{
		Log:          log,
		Cfg:          cfg,
		Services:     svc,
		Metrics:      metrics,
		Server:       server,
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves HTTP (and the metrics endpoint when enabled) until ctx is done
// or one of them fails.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.Server.Run(gctx, a.Cfg.ShutdownTimeout)
	})
	if a.Metrics != nil {
		g.Go(func() error {
			return a.Metrics.StartServer(gctx, a.Log, a.Cfg.MetricsAddr)
		})
	}
	a.Log.Info("Study planner backend started", "addr", a.Server.Addr(), "model", a.Cfg.GeminiModel)
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("OTel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
