package app

import (
	"database/sql"
	"log/slog"

	"github.com/ianroy/makerflowPM/internal/events"
	"github.com/ianroy/makerflowPM/internal/recordservice"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	db        *sql.DB
	service   recordservice.Service
	store     viewconfig.Store
	publisher events.EventPublisher
	logger    *slog.Logger
}

// WithDB uses an already opened database instead of the data directory
func WithDB(db *sql.DB) Option {
	return func(cfg *appConfig) {
		cfg.db = db
	}
}

// WithRecordService overrides the record service selected by the config file
func WithRecordService(svc recordservice.Service) Option {
	return func(cfg *appConfig) {
		cfg.service = svc
	}
}

// WithViewStore overrides the view configuration store selected by the config file
func WithViewStore(store viewconfig.Store) Option {
	return func(cfg *appConfig) {
		cfg.store = store
	}
}

// WithEventPublisher sets the event publisher for the application
func WithEventPublisher(p events.EventPublisher) Option {
	return func(cfg *appConfig) {
		cfg.publisher = p
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}
