// Package app holds the process-wide state of the service: the store handle
// and the "started" flag.  Both are initialised by Startup and cleared by
// Shutdown instead of living in package globals.
package app

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
)

// Store is the lifecycle half of the data access layer.
type Store interface {
	Connect(ctx context.Context) error
	Disconnect() error
}

// App is the application context shared by the HTTP layer.
type App struct {
	store   Store
	logger  *zap.Logger
	started atomic.Bool
}

// New creates an App.  Nothing is connected until Startup runs.
func New(store Store, logger *zap.Logger) *App {
	return &App{store: store, logger: logger}
}

// Started reports whether the startup hook has run.
func (a *App) Started() bool {
	return a.started.Load()
}

// Startup marks the process as started and then connects the store.  A
// connect failure is logged but does not stop the process from serving:
// /startup reports "started" while /readiness keeps failing until an
// operator fixes the store.
func (a *App) Startup(ctx context.Context) {
	a.started.Store(true)
	a.logger.Info("application startup", zap.Bool("started", true))

	if err := a.store.Connect(ctx); err != nil {
		a.logger.Error("store connect failed; serving without a database", zap.Error(err))
		return
	}
	a.logger.Info("store connected")
}

// Shutdown releases the store.  Errors are logged and swallowed since
// there is nobody left to report them to.
func (a *App) Shutdown() {
	if err := a.store.Disconnect(); err != nil {
		a.logger.Warn("store disconnect failed", zap.Error(err))
	}
	a.started.Store(false)
	a.logger.Info("application shutdown complete")
}
