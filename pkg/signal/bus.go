// Package signal carries in-process one-shot refresh signals between the
// services that change data and the delivery layer that tells connected
// clients to refetch.
package signal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const (
	TopicChatRefresh         = "chat.refresh"
	TopicIntegrationsRefresh = "integrations.refresh"
)

// Refresh tells one user's clients that a slice of their data changed and
// should be refetched. It carries no payload beyond identification; the
// client always refetches from the API.
type Refresh struct {
	UserId uuid.UUID              `json:"user_id"`
	Kind   string                 `json:"kind"`
	Data   map[string]interface{} `json:"data,omitempty"`
}

// Bus is a thin typed wrapper over a watermill gochannel pub/sub.
type Bus struct {
	pubSub *gochannel.GoChannel
}

func NewBus() *Bus {
	return &Bus{
		pubSub: gochannel.NewGoChannel(
			gochannel.Config{},
			watermill.NewStdLogger(false, false),
		),
	}
}

// Publish emits a refresh signal on the topic. Fire and forget: callers
// never wait on delivery.
func (b *Bus) Publish(topic string, refresh Refresh) error {
	payload, err := json.Marshal(refresh)
	if err != nil {
		return fmt.Errorf("failed to marshal refresh signal: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return b.pubSub.Publish(topic, msg)
}

// Subscribe returns the message stream for a topic.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, topic)
}

// Close shuts the underlying pub/sub down.
func (b *Bus) Close() error {
	return b.pubSub.Close()
}

// Decode parses a refresh signal out of a watermill message.
func Decode(msg *message.Message) (Refresh, error) {
	var refresh Refresh
	if err := json.Unmarshal(msg.Payload, &refresh); err != nil {
		return Refresh{}, fmt.Errorf("failed to unmarshal refresh signal: %w", err)
	}
	return refresh, nil
}
