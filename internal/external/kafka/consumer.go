package kafka

import (
	"context"
	"errors"
	"log/slog"

	"PaymentWebhooks/internal/messaging"

	"github.com/segmentio/kafka-go"
)

// Consumer implements messaging.Worker using Kafka.
type Consumer struct {
	reader *kafka.Reader
}

var _ messaging.Worker = (*Consumer)(nil)

func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})

	return &Consumer{reader: reader}
}

// Start fetches messages until ctx is cancelled. A message is committed only
// after the handler succeeds; on handler error it stays uncommitted and is
// redelivered after a rebalance or restart.
func (c *Consumer) Start(ctx context.Context, handler messaging.MessageHandler) error {
	cfg := c.reader.Config()
	slog.InfoContext(ctx, "Consumer started",
		slog.String("topic", cfg.Topic),
		slog.String("group_id", cfg.GroupID))

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				slog.InfoContext(ctx, "Consumer stopped", slog.String("topic", cfg.Topic))
				return nil
			}
			slog.ErrorContext(ctx, "Failed to fetch message",
				slog.String("topic", cfg.Topic),
				slog.Any("error", err))
			return err
		}

		msgCtx := withCorrelation(ctx, msg.Headers)
		attrs := []any{
			slog.String("topic", msg.Topic),
			slog.Int("partition", msg.Partition),
			slog.Int64("offset", msg.Offset),
			slog.String("key", string(msg.Key)),
		}
		slog.DebugContext(msgCtx, "Message received", attrs...)

		if err := handler(msgCtx, msg.Key, msg.Value); err != nil {
			slog.ErrorContext(msgCtx, "Handler error, message not committed",
				append(attrs, slog.Any("error", err))...)
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			slog.ErrorContext(msgCtx, "Failed to commit message",
				append(attrs, slog.Any("error", err))...)
			return err
		}
	}
}

func (c *Consumer) Close() error {
	cfg := c.reader.Config()
	slog.Info("Closing consumer",
		slog.String("topic", cfg.Topic),
		slog.String("group_id", cfg.GroupID))
	return c.reader.Close()
}
