package message

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"PaymentWebhooks/internal/messaging"
	"PaymentWebhooks/internal/webhook"
	"PaymentWebhooks/internal/webhook/event"
	"PaymentWebhooks/internal/webhook/signature"
)

// VerifiedHandler dispatches payloads that were verified before queueing.
type VerifiedHandler interface {
	HandleVerified(ctx context.Context, payload signature.VerifiedPayload) (webhook.Result, error)
}

// WebhookMessageController consumes deliveries queued by the ingest service.
type WebhookMessageController struct {
	handler VerifiedHandler
}

func NewWebhookMessageController(handler VerifiedHandler) *WebhookMessageController {
	return &WebhookMessageController{handler: handler}
}

// HandleMessage returns permanent errors for messages that can never succeed
// so the retry middleware sends them straight to the DLQ.
func (c *WebhookMessageController) HandleMessage(ctx context.Context, key, value []byte) error {
	var env messaging.Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		slog.ErrorContext(ctx, "Failed to unmarshal envelope",
			slog.String("key", string(key)),
			slog.Any("error", err))
		return messaging.Permanent(fmt.Errorf("unmarshal envelope: %w", err))
	}
	if env.Type != webhook.MessageType {
		return messaging.Permanent(fmt.Errorf("unexpected message type %q", env.Type))
	}

	slog.DebugContext(ctx, "Processing webhook message",
		slog.String("event_id", env.EventID),
		slog.String("key", env.Key))

	// the topic is internal; only the ingest service writes to it after
	// verifying the signature
	res, err := c.handler.HandleVerified(ctx, signature.FromTrustedSource(env.Payload))
	if err != nil {
		if errors.Is(err, event.ErrParse) || errors.Is(err, event.ErrMissingField) {
			return messaging.Permanent(err)
		}
		return err
	}

	slog.DebugContext(ctx, "Webhook message processed",
		slog.String("event_id", env.EventID),
		slog.String("outcome", string(res.Outcome)))
	return nil
}
