package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareCountsByRoute(t *testing.T) {
	c := NewCollector()
	e := echo.New()
	e.Use(c.Middleware())
	e.GET("/items", func(ctx echo.Context) error { return ctx.JSON(http.StatusOK, []string{}) })
	e.GET("/boom", func(ctx echo.Context) error {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "down")
	})

	for _, path := range []string{"/items", "/items", "/boom"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(c.requests.WithLabelValues("GET", "/items", "200")); got != 2 {
		t.Errorf("expected 2 requests on /items, got %v", got)
	}
	if got := testutil.ToFloat64(c.requests.WithLabelValues("GET", "/boom", "503")); got != 1 {
		t.Errorf("expected error status to be recorded, got %v", got)
	}
}

func TestItemCreatedAndHandler(t *testing.T) {
	c := NewCollector()
	c.ItemCreated(true)
	c.ItemCreated(false)
	c.ItemCreated(true)

	if got := testutil.ToFloat64(c.itemsCreated.WithLabelValues("true")); got != 2 {
		t.Errorf("expected 2 creates with id, got %v", got)
	}

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `items_created_total{id_assigned="false"} 1`) {
		t.Errorf("exposition missing items_created_total:\n%s", body)
	}
}

func TestCollectorsAreIndependent(t *testing.T) {
	a, b := NewCollector(), NewCollector()
	a.ItemCreated(true)
	if got := testutil.ToFloat64(b.itemsCreated.WithLabelValues("true")); got != 0 {
		t.Errorf("collectors share state: %v", got)
	}
}
