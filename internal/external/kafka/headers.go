package kafka

import (
	"context"

	"PaymentWebhooks/pkg/correlation"

	"github.com/segmentio/kafka-go"
)

func correlationHeaders(ctx context.Context) []kafka.Header {
	id := correlation.FromContext(ctx)
	if id == "" {
		return nil
	}
	return []kafka.Header{{Key: correlation.HeaderName, Value: []byte(id)}}
}

// withCorrelation restores the producer's correlation id, or starts a new one.
func withCorrelation(ctx context.Context, headers []kafka.Header) context.Context {
	for _, h := range headers {
		if h.Key == correlation.HeaderName && len(h.Value) > 0 {
			return correlation.WithID(ctx, string(h.Value))
		}
	}
	ctx, _ = correlation.Ensure(ctx)
	return ctx
}
