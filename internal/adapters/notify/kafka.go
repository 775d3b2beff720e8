package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	portssvc "github.com/SscSPs/b2b_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/b2b_inventory_app/internal/middleware"
	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes events to a topic keyed by their first argument.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates an async writer; delivery errors are only logged.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to deliver events to Kafka",
					slog.String("error", err.Error()),
					slog.Int("messages", len(messages)))
			}
		},
	}
	return &KafkaPublisher{writer: w}
}

var _ portssvc.Notifier = (*KafkaPublisher)(nil)

func (p *KafkaPublisher) Notify(ctx context.Context, event string, args ...any) {
	msg, err := kafkaMessage(newEvent(event, args))
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to encode event", slog.String("event", event), slog.String("error", err.Error()))
		return
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to enqueue event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes pending messages.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func kafkaMessage(e Event) (kafka.Message, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, err
	}
	key := e.Name
	if len(e.Args) > 0 {
		key = fmt.Sprint(e.Args[0])
	}
	return kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  e.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(e.Name)},
			{Key: "source", Value: []byte("b2b-inventory")},
		},
	}, nil
}
