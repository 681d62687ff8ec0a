package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agoralabs/agora-backend/internal/data/db"
	"github.com/agoralabs/agora-backend/internal/observability"
	"github.com/agoralabs/agora-backend/internal/platform/logger"
	"github.com/agoralabs/agora-backend/internal/realtime"
	"github.com/agoralabs/agora-backend/internal/realtime/bus"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	Bus      bus.Bus

	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "agora-backend",
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	theDB := pg.DB()
	if err := db.AutoMigrateAll(theDB); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}

	// Notification fan-out degrades to table-only when Redis is absent.
	notifBus, err := bus.NewRedisBus(log)
	if err != nil {
		log.Warn("Redis bus unavailable, notifications stay table-only", "error", err)
		notifBus = nil
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, reposet, notifBus)
	handlerset := wireHandlers(serviceset)
	router := wireRouter(log, handlerset)

	// In single-process deployments the API server is also the delivery
	// process; it subscribes to its own publishes.
	ctx, cancel := context.WithCancel(context.Background())
	if notifBus != nil {
		if err := notifBus.StartForwarder(ctx, func(m realtime.Message) {
			log.Debug("notification delivered", "channel", m.Channel, "event", m.Event)
		}); err != nil {
			log.Warn("notification forwarder failed to start", "error", err)
		}
	}

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Bus:          notifBus,
		otelShutdown: otelShutdown,
		cancel:       cancel,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.Bus != nil {
		_ = a.Bus.Close()
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = a.otelShutdown(ctx)
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
