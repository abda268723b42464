// Package di provides dependency injection configuration for the Parley
// interaction engine.
package di

import (
	"github.com/samber/do/v2"

	"github.com/parleyapp/parley-server/internal/auth"
	"github.com/parleyapp/parley-server/internal/config"
	"github.com/parleyapp/parley-server/internal/di/providers"
	"github.com/parleyapp/parley-server/internal/logger"
	"github.com/parleyapp/parley-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideTokenService)

	// Push and persistence
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideStore)

	// Business services
	do.Provide(injector, providers.ProvideNotificationService)
	do.Provide(injector, providers.ProvideVoteService)
	do.Provide(injector, providers.ProvideSolutionService)
	do.Provide(injector, providers.ProvideBookmarkService)

	// Server
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the server is running.
// This triggers lazy initialization of every provider in dependency order.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*auth.TokenService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SSEManagerHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.NotificationService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.VoteService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.SolutionService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.BookmarkService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.RateLimiterHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}
	return nil
}
