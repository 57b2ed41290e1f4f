package events

import (
	"context"
	"errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/suitespot/service-booking/internal/application"
	"github.com/suitespot/service-booking/internal/pkg/apperror"
	"github.com/suitespot/service-booking/internal/pkg/contracts"
	"github.com/suitespot/service-booking/internal/pkg/kafka"
)

// RoomUpserter applies a catalog room definition. *application.RoomService satisfies it.
type RoomUpserter interface {
	UpsertRoom(ctx context.Context, req application.UpsertRoomRequest) (*application.RoomDTO, error)
}

// RoomCatalogConsumer listens to the room catalog and keeps the rooms table in sync.
type RoomCatalogConsumer struct {
	consumer *kafka.Consumer
	rooms    RoomUpserter
	logger   *zap.Logger
}

// NewRoomCatalogConsumer creates a new RoomCatalogConsumer.
func NewRoomCatalogConsumer(
	brokers []string,
	groupID string,
	rooms RoomUpserter,
	logger *zap.Logger,
) *RoomCatalogConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, contracts.TopicRoomCatalog, logger)
	return &RoomCatalogConsumer{
		consumer: consumer,
		rooms:    rooms,
		logger:   logger,
	}
}

// Start begins consuming catalog events. This blocks until the context is cancelled.
func (c *RoomCatalogConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *RoomCatalogConsumer) Close() error {
	return c.consumer.Close()
}

func (c *RoomCatalogConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from room catalog",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case contracts.RoomUpserted:
		return c.handleRoomUpserted(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled room catalog event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *RoomCatalogConsumer) handleRoomUpserted(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt contracts.RoomUpsertedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse RoomUpsertedEvent data", zap.Error(err))
		return nil
	}

	room, err := c.rooms.UpsertRoom(ctx, application.UpsertRoomRequest{
		RoomNo:          evt.RoomNo,
		Title:           evt.Title,
		Description:     evt.Description,
		ImageURL:        evt.ImageURL,
		RoomSize:        evt.RoomSize,
		Capacity:        evt.Capacity,
		PricePerNight:   evt.PricePerNight,
		Offer:           evt.Offer,
		DiscountPercent: evt.DiscountPercent,
	})
	if err != nil {
		var validation *apperror.ValidationError
		if errors.As(err, &validation) {
			c.logger.Warn("rejected invalid catalog room",
				zap.String("room_no", evt.RoomNo),
				zap.String("reason", validation.Message),
			)
			return nil
		}
		c.logger.Error("failed to upsert catalog room",
			zap.String("room_no", evt.RoomNo),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("catalog room applied", zap.String("room_no", room.RoomNo))
	return nil
}
