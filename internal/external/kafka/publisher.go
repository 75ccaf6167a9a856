package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"PaymentWebhooks/internal/messaging"
	"PaymentWebhooks/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

// Publisher implements messaging.Publisher using Kafka. Messages are keyed
// by Envelope.Key so one key always lands on one partition.
type Publisher struct {
	writer *kafka.Writer
}

var _ messaging.Publisher = (*Publisher)(nil)

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{writer: newWriter(brokers, topic)}
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
}

func (p *Publisher) Publish(ctx context.Context, env messaging.Envelope) error {
	value, err := json.Marshal(env)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:     []byte(env.Key),
		Value:   value,
		Headers: correlationHeaders(ctx),
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		metrics.KafkaMessagesPublished.WithLabelValues(p.writer.Topic, "error").Inc()
		slog.ErrorContext(ctx, "Failed to publish message",
			slog.String("topic", p.writer.Topic),
			slog.String("key", env.Key),
			slog.Any("error", err))
		return err
	}

	metrics.KafkaMessagesPublished.WithLabelValues(p.writer.Topic, "success").Inc()
	slog.DebugContext(ctx, "Message published",
		slog.String("topic", p.writer.Topic),
		slog.String("key", env.Key),
		slog.String("event_id", env.EventID),
		slog.String("type", env.Type))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
