package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/farm-catalog-backend/internal/data/db"
	httpserver "github.com/yungbote/farm-catalog-backend/internal/http"
	"github.com/yungbote/farm-catalog-backend/internal/observability"
	"github.com/yungbote/farm-catalog-backend/internal/pkg/logger"
	"github.com/yungbote/farm-catalog-backend/internal/realtime"
	"github.com/yungbote/farm-catalog-backend/internal/realtime/bus"
	"github.com/yungbote/farm-catalog-backend/internal/seed"
)

const collectorInterval = 15 * time.Second

// ErrWatchNeedsRedis is returned by Watch when events only travel in-process.
var ErrWatchNeedsRedis = errors.New("watch requires REDIS_ADDR: without redis, catalog events never leave the serving process")

type App struct {
	Log      *logger.Logger
	Cfg      Config
	DB       *gorm.DB
	Metrics  *observability.Metrics
	Bus      bus.Bus
	Repos    Repos
	Services Services
	Handlers Handlers
	Server   *httpserver.Server

	database     *db.Service
	shutdownOTel func(context.Context) error
}

// New opens the database and event bus and wires the HTTP stack. It does not
// migrate the schema or start serving.
func New(ctx context.Context, cfg Config) (*App, error) {
	log, err := logger.New(cfg.LogMode(), cfg.App.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	log = log.With("app", cfg.App.Name)

	shutdownOTel := observability.InitOTel(ctx, log, cfg.Tracing())

	database, err := db.Open(ctx, cfg.Database(), log)
	if err != nil {
		_ = shutdownOTel(ctx)
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	theDB := database.DB()

	events, err := wireBus(ctx, log, cfg)
	if err != nil {
		_ = database.Close()
		_ = shutdownOTel(ctx)
		log.Sync()
		return nil, err
	}

	metrics := observability.NewMetrics(strings.ReplaceAll(cfg.App.Name, "-", "_"))
	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, reposet, metrics, events)
	handlerset := wireHandlers(log, cfg, theDB, serviceset)
	server := wireServer(log, cfg, handlerset, metrics)

	return &App{
		Log:          log,
		Cfg:          cfg,
		DB:           theDB,
		Metrics:      metrics,
		Bus:          events,
		Repos:        reposet,
		Services:     serviceset,
		Handlers:     handlerset,
		Server:       server,
		database:     database,
		shutdownOTel: shutdownOTel,
	}, nil
}

func wireBus(ctx context.Context, log *logger.Logger, cfg Config) (bus.Bus, error) {
	if strings.TrimSpace(cfg.Redis.Addr) == "" {
		log.Info("REDIS_ADDR not set; catalog events are logged only")
		return bus.NewLocalBus(log), nil
	}
	b, err := bus.NewRedisBus(ctx, bus.RedisConfig{Addr: cfg.Redis.Addr, Channel: cfg.Redis.Channel}, log)
	if err != nil {
		return nil, fmt.Errorf("init redis bus: %w", err)
	}
	return b, nil
}

func (a *App) Migrate() error {
	a.Log.Info("Migrating schema...")
	if err := a.database.AutoMigrateAll(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Seed loads the configured seed file into an empty catalog.
func (a *App) Seed(ctx context.Context) (seed.Result, error) {
	f, err := seed.Load(a.Cfg.Seed.File)
	if err != nil {
		return seed.Result{}, err
	}
	seeder := seed.NewSeeder(a.Log, a.Services.Farm, a.Services.Fruit, a.Services.Vegetable)
	return seeder.Apply(ctx, f)
}

// Run migrates, optionally seeds, and serves until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	if err := a.Migrate(); err != nil {
		return err
	}
	if a.Cfg.Seed.OnStart {
		if _, err := a.Seed(ctx); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	a.Metrics.StartDBCollector(ctx, a.Log, a.DB, collectorInterval)
	a.Metrics.StartRedisCollector(ctx, a.Log, a.Cfg.Redis.Addr, collectorInterval)

	return a.Server.Run(ctx)
}

// Watch streams catalog events from the bus to onEvent until ctx is cancelled.
func (a *App) Watch(ctx context.Context, onEvent func(ev realtime.CatalogEvent)) error {
	if strings.TrimSpace(a.Cfg.Redis.Addr) == "" {
		return ErrWatchNeedsRedis
	}
	if err := a.Bus.StartForwarder(ctx, onEvent); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Bus != nil {
		if err := a.Bus.Close(); err != nil {
			a.Log.Warn("Event bus close failed", "error", err)
		}
	}
	if a.database != nil {
		if err := a.database.Close(); err != nil {
			a.Log.Warn("Database close failed", "error", err)
		}
	}
	if a.shutdownOTel != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.shutdownOTel(ctx); err != nil {
			a.Log.Warn("Tracer shutdown failed", "error", err)
		}
	}
	a.Log.Sync()
}
