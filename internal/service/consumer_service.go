package service

import (
	"context"
	"time"

	"db-chat-be/internal/pkg/logger"
	"db-chat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

const relayTimeout = 5 * time.Second

// EventRelay forwards events outside the process. *nats.Publisher satisfies it.
type EventRelay interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	// Consume blocks until ctx is cancelled or the subscriber is closed.
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	relay      EventRelay
	logger     logger.ILogger
}

// NewConsumerService builds the event consumer. relay may be nil, in which
// case events are only logged.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	relay EventRelay,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		relay:      relay,
		logger:     logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	for msg := range messages {
		cs.processMessage(ctx, msg)
	}
	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// Ack in every branch: gochannel redelivers a Nack immediately, so a
	// poison message would spin forever.
	defer msg.Ack()

	event, err := events.Unmarshal(msg.Payload)
	if err != nil {
		cs.logger.Error("ConsumerService", "Failed to decode event", map[string]interface{}{
			"action":     "consume_event",
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	cs.logger.Info("ConsumerService", "Event received", map[string]interface{}{
		"action":      "consume_event",
		"event_type":  event.EventType(),
		"occurred_at": event.Timestamp(),
		"payload":     event.Payload(),
	})

	if cs.relay == nil {
		return
	}

	relayCtx, cancel := context.WithTimeout(ctx, relayTimeout)
	defer cancel()

	if err := cs.relay.Publish(relayCtx, event); err != nil {
		cs.logger.Warn("ConsumerService", "Failed to relay event to NATS", map[string]interface{}{
			"action":     "relay_event",
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
	}
}
