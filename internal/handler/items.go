package handler // handler package contains the item handlers

import (
	"context"  // context bounds the background event publish
	"errors"   // errors matches repository error kinds
	"fmt"      // fmt formats binding error details
	"net/http" // http provides status code constants
	"sync"     // sync tracks background publishes
	"time"     // time stamps published events

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers
	"go.uber.org/zap"

	"github.com/iliyamo/items-service/internal/model"      // model holds the Item type
	"github.com/iliyamo/items-service/internal/queue"      // queue defines event payloads
	"github.com/iliyamo/items-service/internal/repository" // repository defines error kinds
	"github.com/iliyamo/items-service/internal/service"    // service publishes events
)

// publishTimeout bounds how long a background event publish may take.
const publishTimeout = 5 * time.Second

// ItemStore is the part of the repository the item handlers need.
type ItemStore interface {
	List(ctx context.Context) ([]*model.Item, error)
	Create(ctx context.Context, item string, descripcion *string) (*model.Item, error)
}

// CreateRecorder is notified about every created item.
type CreateRecorder interface {
	ItemCreated(idAssigned bool)
}

// ItemHandler bundles the dependencies of the /items endpoints
type ItemHandler struct {
	Store   ItemStore         // Store provides item persistence
	Events  service.Publisher // Events receives item.created events
	Metrics CreateRecorder    // Metrics counts creates
	Logger  *zap.Logger

	pending sync.WaitGroup // in-flight event publishes
}

// NewItemHandler constructs a new ItemHandler and panics if any dependency is nil
func NewItemHandler(store ItemStore, events service.Publisher, metrics CreateRecorder, logger *zap.Logger) *ItemHandler {
	if store == nil || events == nil || metrics == nil || logger == nil { // check for nil dependencies
		panic("nil dependency passed to NewItemHandler") // panic when a dependency is missing
	}
	return &ItemHandler{Store: store, Events: events, Metrics: metrics, Logger: logger}
}

// CreateItemRequest is the POST /items payload.  Descripcion is optional and
// may be null.
type CreateItemRequest struct {
	Item        string  `json:"item" validate:"required,max=255"`
	Descripcion *string `json:"descripcion"`
}

// ListItems handles GET /items and returns every stored item
func (h *ItemHandler) ListItems(c echo.Context) error { // begin ListItems handler
	items, err := h.Store.List(c.Request().Context()) // fetch all rows
	if err != nil {                                   // handle repository errors
		h.Logger.Error("list items failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to list items"})
	}
	if items == nil { // render an empty table as [] rather than null
		items = []*model.Item{}
	}
	return c.JSON(http.StatusOK, items) // return the bare array
}

// CreateItem handles POST /items.  Malformed or invalid payloads are rejected
// with 422 before the store is called.
func (h *ItemHandler) CreateItem(c echo.Context) error { // begin CreateItem handler
	var req CreateItemRequest
	if err := c.Bind(&req); err != nil { // attempt to bind the request body into the struct
		return echo.NewHTTPError(http.StatusUnprocessableEntity, bindDetail(err)).SetInternal(err)
	}
	if err := c.Validate(&req); err != nil { // validator returns a 422 HTTPError
		return err
	}

	item, err := h.Store.Create(c.Request().Context(), req.Item, req.Descripcion) // delegate creation to the repository
	if err != nil {
		h.Logger.Error("create item failed",
			zap.Bool("not_connected", errors.Is(err, repository.ErrNotConnected)),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to create item"})
	}

	if item.ID == nil { // fallback path: row stored but id unknown
		h.Logger.Warn("item created without id", zap.String("item", item.Item))
	}
	h.Metrics.ItemCreated(item.ID != nil)
	h.publishCreated(item)
	return c.JSON(http.StatusCreated, item) // return 201 and the created item
}

// publishCreated sends the event in the background so the broker never
// delays or fails the request.  The publisher logs its own failures.
func (h *ItemHandler) publishCreated(item *model.Item) {
	ev := queue.NewItemCreatedEvent(item, time.Now())
	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		_ = h.Events.PublishItemCreated(ctx, ev)
	}()
}

// Wait blocks until every background publish has returned or ctx is done.
// Call it after the HTTP server has stopped accepting requests.
func (h *ItemHandler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// bindDetail extracts the client facing message from a binding error.
func bindDetail(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return fmt.Sprintf("invalid request body: %v", he.Message)
	}
	return "invalid request body"
}
