package handler // declare the package name; contains HTTP handlers

import (
	"context"
	"net/http" // net/http provides status codes

	"github.com/labstack/echo/v4" // echo is the web framework used for this project
	"go.uber.org/zap"
)

// StartupState reports whether the startup hook has run.
type StartupState interface {
	Started() bool
}

// Pinger proves the store answers a query.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the root greeting and the Kubernetes style probes.
type HealthHandler struct {
	State  StartupState
	Store  Pinger
	Logger *zap.Logger
}

// NewHealthHandler constructs a HealthHandler and panics if any dependency is nil
func NewHealthHandler(state StartupState, store Pinger, logger *zap.Logger) *HealthHandler {
	if state == nil || store == nil || logger == nil {
		panic("nil dependency passed to NewHealthHandler")
	}
	return &HealthHandler{State: state, Store: store, Logger: logger}
}

// Root handles GET / with a static greeting.
func (h *HealthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "items-service is up and running"})
}

// Liveness handles GET /liveness.  It never touches the store.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "alive"})
}

// Startup handles GET /startup.  The flag is set before the store connects,
// so "started" does not imply the database is reachable; use /readiness for that.
func (h *HealthHandler) Startup(c echo.Context) error {
	started := h.State.Started()
	h.Logger.Debug("startup probe", zap.Bool("started", started))
	if started {
		return c.JSON(http.StatusOK, StatusResponse{Status: "started"})
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "starting"})
}

// Readiness handles GET /readiness by running a real query against the store.
func (h *HealthHandler) Readiness(c echo.Context) error {
	if err := h.Store.Ping(c.Request().Context()); err != nil {
		h.Logger.Warn("readiness probe failed", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Detail: "DB not ready"})
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}
