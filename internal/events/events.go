// Package events defines the marketplace domain events and the adapters that
// move them on and off the message bus.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Event types double as AMQP routing keys.
const (
	ItemCreated   = "item.created"
	ItemApproved  = "item.approved"
	ItemRejected  = "item.rejected"
	ItemRedeemed  = "item.redeemed"
	SwapRequested = "swap.requested"
	SwapAccepted  = "swap.accepted"
	SwapRejected  = "swap.rejected"
)

// Event is the JSON envelope published for every state change.
type Event struct {
	Type       string    `json:"type"`
	ItemID     string    `json:"item_id,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	SwapID     string    `json:"swap_id,omitempty"`
	Points     int       `json:"points,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits domain events.
type Publisher interface {
	Publish(e Event) error
}

// Bus is the transport the BusPublisher writes to; *rabbitmq.Client
// satisfies it.
type Bus interface {
	Publish(routingKey string, body []byte) error
}

// BusPublisher serialises events as JSON and routes them by type.
type BusPublisher struct {
	bus Bus
}

// NewBusPublisher creates a BusPublisher on bus.
func NewBusPublisher(bus Bus) *BusPublisher {
	return &BusPublisher{bus: bus}
}

// Publish implements Publisher.
func (p *BusPublisher) Publish(e Event) error {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", e.Type, err)
	}
	return p.bus.Publish(e.Type, body)
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(Event) error { return nil }

// NewLogHandler returns a delivery handler that decodes events and writes
// them to the audit log. Undecodable deliveries are reported as errors.
func NewLogHandler(logger *zap.Logger) func(msg amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var e Event
		if err := json.Unmarshal(msg.Body, &e); err != nil {
			return fmt.Errorf("failed to decode event %q: %w", msg.RoutingKey, err)
		}
		if e.Type == "" {
			return fmt.Errorf("event on %q has no type", msg.RoutingKey)
		}
		logger.Info("marketplace event",
			zap.String("type", e.Type),
			zap.String("item_id", e.ItemID),
			zap.String("user_id", e.UserID),
			zap.String("swap_id", e.SwapID),
			zap.Int("points", e.Points),
			zap.Time("occurred_at", e.OccurredAt),
		)
		return nil
	}
}
