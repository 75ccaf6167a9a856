package app

import (
	"context"
	"log/slog"

	"PaymentWebhooks/config"
	"PaymentWebhooks/internal/controller/message"
	"PaymentWebhooks/internal/external/kafka"
	"PaymentWebhooks/internal/messaging"
)

// StartWorkers consumes queued deliveries until ctx is cancelled. The
// returned channel yields the runner's result once it stops.
func StartWorkers(ctx context.Context, cfg config.Config, handler message.VerifiedHandler) <-chan error {
	dlq := kafka.NewDLQPublisher(cfg.KafkaBrokers, cfg.KafkaWebhooksDLQTopic)

	controller := message.NewWebhookMessageController(handler)
	chain := messaging.WithMetrics(
		cfg.KafkaWebhooksTopic,
		cfg.KafkaWebhooksConsumerGroup,
		messaging.WithDLQ(
			messaging.WithRetry(controller.HandleMessage, messaging.DefaultRetryConfig()),
			dlq,
		),
	)
	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaWebhooksTopic, cfg.KafkaWebhooksConsumerGroup)
	runner := messaging.NewRunner([]messaging.Worker{consumer}, chain)

	done := make(chan error, 1)
	go func() {
		defer func() { _ = dlq.Close() }()

		slog.InfoContext(ctx, "Starting webhook consumer",
			slog.String("topic", cfg.KafkaWebhooksTopic),
			slog.String("group", cfg.KafkaWebhooksConsumerGroup))
		err := runner.Start(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "Webhook runner failed", slog.Any("error", err))
		}
		done <- err
	}()
	return done
}
