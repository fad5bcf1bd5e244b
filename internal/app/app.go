package app

import (
	"log/slog"

	"advisor.fieldroute.org/internal/config"
	"advisor.fieldroute.org/internal/recommend"
	"advisor.fieldroute.org/internal/snapshot"
)

// Application wires all dependencies together and provides a clean API for
// the HTTP handlers: the configuration, the customer snapshot store, the
// recommendation service, the logger, and the application version.
type Application struct {
	Config           *config.Config
	Store            *snapshot.CustomerStore
	RecommendService *recommend.Service
	Logger           *slog.Logger
	Version          string
}

// New creates and wires all dependencies for the Application.
func New(cfg *config.Config, logger *slog.Logger, version string) *Application {
	store := snapshot.NewCustomerStore()
	service := recommend.NewService(store, cfg, logger)

	return &Application{
		Config:           cfg,
		Store:            store,
		RecommendService: service,
		Logger:           logger,
		Version:          version,
	}
}
