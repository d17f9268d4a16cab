package events

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/shareit-hub/service-shareit/pkg/events"
	"github.com/shareit-hub/service-shareit/pkg/kafka"
	"go.uber.org/zap"
)

// ItemViewInvalidator drops cached item views. *application.ItemService satisfies it.
type ItemViewInvalidator interface {
	InvalidateItemViews(ctx context.Context, itemIDs ...int64)
}

// BookingEventConsumer listens to booking events and evicts the affected item views.
type BookingEventConsumer struct {
	consumer *kafka.Consumer
	views    ItemViewInvalidator
	logger   *zap.Logger
}

// NewBookingEventConsumer creates a new BookingEventConsumer.
func NewBookingEventConsumer(
	brokers []string,
	groupID string,
	views ItemViewInvalidator,
	logger *zap.Logger,
) *BookingEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, events.TopicBookingEvents, logger)
	return &BookingEventConsumer{
		consumer: consumer,
		views:    views,
		logger:   logger,
	}
}

// Start begins consuming booking events. This blocks until the context is cancelled.
func (c *BookingEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *BookingEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *BookingEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from booking topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case events.BookingApproved, events.BookingRejected:
		return c.handleBookingDecided(ctx, cloudEvent)
	default:
		// WAITING bookings never appear on an item view.
		c.logger.Debug("ignoring booking event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *BookingEventConsumer) handleBookingDecided(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt events.BookingDecidedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse BookingDecidedEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	c.views.InvalidateItemViews(ctx, evt.ItemID)

	c.logger.Info("item views invalidated after booking decision",
		zap.Int64("booking_id", evt.BookingID),
		zap.Int64("item_id", evt.ItemID),
		zap.String("status", evt.Status),
	)
	return nil
}
