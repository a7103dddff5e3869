// Package service publishes domain events to RabbitMQ.  Publishing is best
// effort: errors are logged and returned so callers can ignore them without
// interrupting the request flow.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/items-service/internal/queue"
)

// Publisher sends item events.
type Publisher interface {
	PublishItemCreated(ctx context.Context, event queue.ItemCreatedEvent) error
}

// NopPublisher drops every event.  Used when no broker is configured.
type NopPublisher struct{}

// PublishItemCreated implements Publisher.
func (NopPublisher) PublishItemCreated(context.Context, queue.ItemCreatedEvent) error { return nil }

// AMQPPublisher dials the broker per event.  Item creation is rare enough
// that holding a long-lived channel is not worth the reconnect handling.
type AMQPPublisher struct {
	url    string
	logger *zap.Logger
}

// NewPublisher returns an AMQPPublisher for url, or a NopPublisher when url
// is empty.
func NewPublisher(url string, logger *zap.Logger) Publisher {
	if url == "" {
		return NopPublisher{}
	}
	return &AMQPPublisher{url: url, logger: logger}
}

// PublishItemCreated publishes the event to the durable items.created queue
// as a persistent JSON message.
func (p *AMQPPublisher) PublishItemCreated(ctx context.Context, event queue.ItemCreatedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.logger.Warn("rabbitmq: dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.logger.Warn("rabbitmq: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		queue.ItemCreatedQueue, // name
		true,                   // durable
		false,                  // autoDelete
		false,                  // exclusive
		false,                  // noWait
		nil,                    // args
	); err != nil {
		p.logger.Warn("rabbitmq: queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn("rabbitmq: marshal event failed", zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",                     // default exchange
		queue.ItemCreatedQueue, // routing key = queue name
		false,                  // mandatory
		false,                  // immediate
		pub,
	); err != nil {
		p.logger.Warn("rabbitmq: publish failed", zap.Error(err))
		return err
	}
	return nil
}
