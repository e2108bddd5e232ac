package service

import (
	"context"
	"fmt"
	"strings"

	"uni-chat-be/internal/pkg/logger"
	"uni-chat-be/internal/websocket"
	"uni-chat-be/pkg/events"
	pktNats "uni-chat-be/pkg/nats"
	"uni-chat-be/pkg/signal"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// FrameDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type FrameDelivery interface {
	Send(userID uuid.UUID, frame websocket.Frame)
	Broadcast(frame websocket.Frame)
}

// NotificationService relays refresh signals and audit events to
// connected browsers. It holds no state of its own; every frame tells
// the client to refetch from the API.
type NotificationService struct {
	signalBus  *signal.Bus
	subscriber *pktNats.Subscriber
	delivery   FrameDelivery
	logger     logger.ILogger
}

func NewNotificationService(signalBus *signal.Bus, sub *pktNats.Subscriber, delivery FrameDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		signalBus:  signalBus,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the in-process signal bus and the event
// stream. ctx cancels the signal subscriptions.
func (s *NotificationService) Start(ctx context.Context) {
	for _, topic := range []string{signal.TopicChatRefresh, signal.TopicIntegrationsRefresh} {
		messages, err := s.signalBus.Subscribe(ctx, topic)
		if err != nil {
			s.logger.Error("NotificationService", "Failed to subscribe to signal topic", map[string]interface{}{
				"topic": topic,
				"error": err.Error(),
			})
			continue
		}
		go s.relaySignals(messages)
	}

	if s.subscriber != nil {
		err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
		if err != nil {
			s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
			return
		}
	}

	s.logger.Info("NotificationService", "Notification service started", nil)
}

// relaySignals forwards refresh signals to the owning user's devices.
func (s *NotificationService) relaySignals(messages <-chan *message.Message) {
	for msg := range messages {
		refresh, err := signal.Decode(msg)
		if err != nil {
			s.logger.Warn("NotificationService", "Dropping malformed refresh signal", map[string]interface{}{"error": err.Error()})
			msg.Ack()
			continue
		}

		if s.delivery != nil && refresh.UserId != uuid.Nil {
			s.delivery.Send(refresh.UserId, websocket.Frame{
				Type: refresh.Kind,
				Data: refresh.Data,
			})
		}
		msg.Ack()
	}
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), "events.")
	s.logger.Info("NotificationService", fmt.Sprintf("Processing event: %s", typeCode), map[string]interface{}{"type": typeCode})

	// Only user-scoped events reach the browser; events without a user_id
	// are audit-only.
	uidStr, ok := event.Payload()["user_id"].(string)
	if !ok {
		return nil
	}
	uid, err := uuid.Parse(uidStr)
	if err != nil {
		return nil
	}

	if s.delivery != nil {
		s.delivery.Send(uid, websocket.Frame{
			Type: typeCode,
			Data: event.Payload(),
		})
	}
	return nil
}
