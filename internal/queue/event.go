// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/iliyamo/items-service/internal/model"
)

// ItemCreatedQueue is the durable queue item events are published to.
const ItemCreatedQueue = "items.created"

// ItemCreatedEvent is published after an item has been stored.  ID is null
// when the store could not report the generated id.
type ItemCreatedEvent struct {
	ID          *int64  `json:"id"`
	Item        string  `json:"item"`
	Descripcion *string `json:"descripcion"`
	CreatedAt   string  `json:"created_at"`
}

// NewItemCreatedEvent builds the event for a stored item.
func NewItemCreatedEvent(it *model.Item, at time.Time) ItemCreatedEvent {
	return ItemCreatedEvent{
		ID:          it.ID,
		Item:        it.Item,
		Descripcion: it.Descripcion,
		CreatedAt:   at.UTC().Format(time.RFC3339),
	}
}
