package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/suitespot/service-booking/internal/pkg/kafka"
)

const eventSource = "service-booking"

// Transactor runs fn in a database transaction. Repository calls made with the
// context passed to fn join that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher sends CloudEvents to a topic. *kafka.Producer satisfies it.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// NoopPublisher drops every event. Used when no Kafka brokers are configured.
type NoopPublisher struct{}

// PublishEvent implements EventPublisher.
func (NoopPublisher) PublishEvent(context.Context, string, kafka.CloudEvent) error { return nil }

// publishEvent is fire-and-forget: a failed publish is logged and never fails
// the operation that produced the event.
func publishEvent(ctx context.Context, publisher EventPublisher, logger *zap.Logger, topic, eventType, subject string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	cloudEvent.Subject = subject

	if err := publisher.PublishEvent(ctx, topic, cloudEvent); err != nil {
		logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
