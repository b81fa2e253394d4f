package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ianroy/makerflowPM/internal/board"
	"github.com/ianroy/makerflowPM/internal/config"
	"github.com/ianroy/makerflowPM/internal/database"
	"github.com/ianroy/makerflowPM/internal/events"
	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/ianroy/makerflowPM/internal/recordservice"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
	"github.com/redis/go-redis/v9"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	Config *config.Config

	// Repository layer, nil when nothing is stored locally
	db   *sql.DB
	repo *database.Repository

	Service   recordservice.Service
	Store     viewconfig.Store
	Publisher events.EventPublisher
	Boards    *board.Manager

	logger  *slog.Logger
	closers []func() error
}

// New wires the record service, view store and event publisher selected by
// cfg. Options replace individual components, mainly for tests.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	o := &appConfig{}
	for _, opt := range opts {
		opt(o)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	a := &App{Config: cfg, db: o.db, logger: o.logger}

	needDB := (o.service == nil && cfg.RecordService.Mode == config.ServiceLocal) ||
		(o.store == nil && cfg.ViewStore.Backend == config.BackendSQLite)
	if needDB && a.db == nil {
		dir := cfg.DataDir
		if dir == "" {
			var err error
			if dir, err = database.DefaultDataDir(); err != nil {
				return nil, err
			}
		}
		db, err := database.InitDB(ctx, dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		a.db = db
		a.closers = append(a.closers, db.Close)
	}
	if a.db != nil {
		a.repo = database.NewRepository(a.db)
	}

	a.Service = o.service
	if a.Service == nil {
		switch cfg.RecordService.Mode {
		case config.ServiceHTTP:
			a.Service = recordservice.NewHTTPClient(cfg.RecordService.BaseURL, cfg.RecordService.Timeout)
		default:
			a.Service = recordservice.NewLocal(a.repo)
		}
	}

	a.Store = o.store
	if a.Store == nil {
		store, err := a.openStore(cfg.ViewStore)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.Store = store
	}

	a.Publisher = o.publisher
	if a.Publisher == nil {
		pub, err := a.openPublisher(cfg.Events)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.Publisher = pub
	}

	a.Boards = board.NewManager(a.Service, a.Store, a.Publisher)
	a.logger.Debug("app initialized",
		"record_service", cfg.RecordService.Mode,
		"view_store", cfg.ViewStore.Backend,
		"events", cfg.Events.Backend)
	return a, nil
}

func (a *App) openStore(cfg config.ViewStoreConfig) (viewconfig.Store, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		store, err := viewconfig.NewRedisStore(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB}, cfg.Namespace)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	case config.BackendMemory:
		return viewconfig.NewMemoryStore(), nil
	default:
		return viewconfig.NewSQLStore(a.repo.ViewConfigs), nil
	}
}

func (a *App) openPublisher(cfg config.EventsConfig) (events.EventPublisher, error) {
	if cfg.Backend == config.BackendRedis {
		pub, err := events.NewRedisPublisher(&redis.Options{Addr: cfg.RedisAddr}, cfg.Namespace)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pub.Close)
		return pub, nil
	}
	bus := events.NewBus()
	a.closers = append(a.closers, bus.Close)
	return bus, nil
}

// Repo returns the local repository, or nil when records and views are remote
func (a *App) Repo() *database.Repository {
	return a.repo
}

// BoardKey builds the key of the configured user's board for kind
func (a *App) BoardKey(kind models.EntityKind, scope string) string {
	return viewconfig.BoardKey(a.Config.User, kind, scope)
}

// OpenBoard opens the configured user's board for kind
func (a *App) OpenBoard(ctx context.Context, kind models.EntityKind, scope string) (*board.Board, error) {
	return a.Boards.Open(ctx, a.BoardKey(kind, scope), kind)
}

// Close releases everything New opened, in reverse order
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
