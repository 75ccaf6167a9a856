package kafka

import (
	"context"
	"log/slog"
	"time"

	"PaymentWebhooks/internal/messaging"
	"PaymentWebhooks/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

// DLQPublisher publishes failed messages to a dead letter topic.
type DLQPublisher struct {
	writer *kafka.Writer
}

var _ messaging.DLQPublisher = (*DLQPublisher)(nil)

func NewDLQPublisher(brokers []string, dlqTopic string) *DLQPublisher {
	return &DLQPublisher{writer: newWriter(brokers, dlqTopic)}
}

// PublishToDLQ keeps the original key and value and adds the failure as
// headers.
func (p *DLQPublisher) PublishToDLQ(ctx context.Context, key, value []byte, err error) error {
	msg := kafka.Message{
		Key:     key,
		Value:   value,
		Headers: dlqHeaders(ctx, err, time.Now()),
	}

	if writeErr := p.writer.WriteMessages(ctx, msg); writeErr != nil {
		metrics.KafkaMessagesPublished.WithLabelValues(p.writer.Topic, "error").Inc()
		slog.ErrorContext(ctx, "Failed to publish to DLQ",
			slog.String("topic", p.writer.Topic),
			slog.String("key", string(key)),
			slog.Any("error", writeErr),
			slog.Any("original_error", err))
		return writeErr
	}

	metrics.KafkaMessagesPublished.WithLabelValues(p.writer.Topic, "success").Inc()
	slog.WarnContext(ctx, "Message sent to DLQ",
		slog.String("topic", p.writer.Topic),
		slog.String("key", string(key)),
		slog.Any("error", err))
	return nil
}

func dlqHeaders(ctx context.Context, err error, failedAt time.Time) []kafka.Header {
	headers := []kafka.Header{
		{Key: "error", Value: []byte(err.Error())},
		{Key: "failed_at", Value: []byte(failedAt.UTC().Format(time.RFC3339))},
	}
	if messaging.IsPermanent(err) {
		headers = append(headers, kafka.Header{Key: "permanent", Value: []byte("true")})
	}
	return append(headers, correlationHeaders(ctx)...)
}

func (p *DLQPublisher) Close() error {
	return p.writer.Close()
}
