// Package di provides dependency injection configuration for the kanban server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/megsikon/kanban-server/internal/api"
	"github.com/megsikon/kanban-server/internal/config"
	"github.com/megsikon/kanban-server/internal/di/providers"
	"github.com/megsikon/kanban-server/internal/logger"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)

	// Repositories
	do.Provide(injector, providers.ProvideRepositories)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*api.Repositories](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
