package events

import (
	"context"
	"encoding/json"
	"time"

	"foodexpress/models"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const (
	TopicOrderPlaced        = "orders.placed"
	TopicOrderStatusChanged = "orders.status_changed"
)

// OrderPlacedEvent is emitted when an order is persisted
type OrderPlacedEvent struct {
	OrderID      string    `json:"order_id"`
	UserID       string    `json:"user_id"`
	RestaurantID string    `json:"restaurant_id"`
	TotalAmount  float64   `json:"total_amount"`
	ItemsCount   int       `json:"items_count"`
	PlacedAt     time.Time `json:"placed_at"`
	EventTime    time.Time `json:"event_time"`
}

// OrderStatusChangedEvent is emitted when an order transitions between statuses
type OrderStatusChangedEvent struct {
	OrderID   string    `json:"order_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	EventTime time.Time `json:"event_time"`
}

// NewKafkaWriter builds a writer for the given broker. The topic is set per message
// so one writer serves both order topics.
func NewKafkaWriter(broker string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(broker),
		Balancer: &kafka.LeastBytes{},
	}
}

// KafkaPublisher publishes order lifecycle events, keyed by order id
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *logrus.Logger
}

// NewKafkaPublisher creates a new KafkaPublisher
func NewKafkaPublisher(writer *kafka.Writer, logger *logrus.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, logger: logger}
}

// OrderPlaced publishes an orders.placed event.
func (p *KafkaPublisher) OrderPlaced(ctx context.Context, order *models.Order) error {
	event := OrderPlacedEvent{
		OrderID:      order.ID.Hex(),
		UserID:       order.UserID.Hex(),
		RestaurantID: order.RestaurantID.Hex(),
		TotalAmount:  order.TotalAmount,
		ItemsCount:   len(order.Items),
		PlacedAt:     order.CreatedAt,
		EventTime:    time.Now().UTC(),
	}
	return p.publish(ctx, TopicOrderPlaced, order.ID.Hex(), event)
}

// OrderStatusChanged publishes an orders.status_changed event.
func (p *KafkaPublisher) OrderStatusChanged(ctx context.Context, order *models.Order, previous models.OrderStatus) error {
	event := OrderStatusChangedEvent{
		OrderID:   order.ID.Hex(),
		From:      string(previous),
		To:        string(order.Status),
		EventTime: time.Now().UTC(),
	}
	return p.publish(ctx, TopicOrderStatusChanged, order.ID.Hex(), event)
}

func (p *KafkaPublisher) publish(ctx context.Context, topic, key string, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	}); err != nil {
		return err
	}
	p.logger.WithFields(logrus.Fields{
		"topic":    topic,
		"order_id": key,
	}).Info("Event published")
	return nil
}
