package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/items-service/internal/handler"    // handlers that implement the endpoints
	"github.com/iliyamo/items-service/internal/metrics"    // Prometheus collector
	"github.com/iliyamo/items-service/internal/middleware" // request logging
)

// Setup installs the validator, the JSON error handler and the global
// middleware chain.  Recover sits innermost so panics are rendered as 500s
// before the logger and metrics look at the status.
func Setup(e *echo.Echo, logger *zap.Logger, collector *metrics.Collector) {
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.ErrorHandler(logger)

	e.Use(collector.Middleware())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.Recover())
}

// RegisterRoutes registers the greeting and the probe endpoints.  None of
// them are rate limited.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/", h.Root)
	e.GET("/liveness", h.Liveness)
	e.GET("/startup", h.Startup)
	e.GET("/readiness", h.Readiness)
}

// RegisterItems registers the /items endpoints.  Extra middleware (the rate
// limiter) applies to this group only.
func RegisterItems(e *echo.Echo, i *handler.ItemHandler, m ...echo.MiddlewareFunc) {
	g := e.Group("/items", m...)
	g.GET("", i.ListItems)
	g.POST("", i.CreateItem)
}

// RegisterMetrics exposes the Prometheus registry at /metrics.
func RegisterMetrics(e *echo.Echo, collector *metrics.Collector) {
	e.GET("/metrics", echo.WrapHandler(collector.Handler()))
}
