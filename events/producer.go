package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event types published on the order lifecycle topic
const (
	OrderPlaced    = "order.placed"
	OrderCancelled = "order.cancelled"
	OrderCompleted = "order.completed"
)

// OrderEvent is the payload emitted on every order lifecycle transition
type OrderEvent struct {
	Type         string    `json:"type"`
	CartID       string    `json:"cart_id"`
	UserID       string    `json:"user_id"`
	RestaurantID string    `json:"restaurant_id"`
	TotalPrice   float64   `json:"total_price"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Producer publishes order events to Kafka. A nil Producer is a valid
// no-op, so deployments without a broker need no conditional call sites.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	if len(brokers) == 0 {
		return nil
	}
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

// Publish sends one event, keyed by cart id so per-cart ordering is kept
func (p *Producer) Publish(ctx context.Context, ev OrderEvent) error {
	if p == nil {
		return nil
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.CartID),
		Value: payload,
	})
}

func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
