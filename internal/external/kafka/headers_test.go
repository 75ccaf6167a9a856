package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"PaymentWebhooks/internal/messaging"
	"PaymentWebhooks/pkg/correlation"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelationHeaders(t *testing.T) {
	t.Run("should omit header without correlation id", func(t *testing.T) {
		assert.Empty(t, correlationHeaders(context.Background()))
	})

	t.Run("should round trip correlation id", func(t *testing.T) {
		// given
		ctx := correlation.WithID(context.Background(), "corr-1")

		// when
		restored := withCorrelation(context.Background(), correlationHeaders(ctx))

		// then
		assert.Equal(t, "corr-1", correlation.FromContext(restored))
	})

	t.Run("should start a new id when the producer sent none", func(t *testing.T) {
		restored := withCorrelation(context.Background(), []kafka.Header{{Key: "other", Value: []byte("x")}})

		assert.NotEmpty(t, correlation.FromContext(restored))
	})
}

func TestDLQHeaders(t *testing.T) {
	// given
	ctx := correlation.WithID(context.Background(), "corr-2")
	failedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	// when
	headers := dlqHeaders(ctx, messaging.Permanent(errors.New("bad payload")), failedAt)

	// then
	got := map[string]string{}
	for _, h := range headers {
		got[h.Key] = string(h.Value)
	}
	require.Len(t, got, 4)
	assert.Equal(t, "bad payload", got["error"])
	assert.Equal(t, "2026-01-02T03:04:05Z", got["failed_at"])
	assert.Equal(t, "true", got["permanent"])
	assert.Equal(t, "corr-2", got[correlation.HeaderName])
}
