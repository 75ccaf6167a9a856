package fulfillment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"PaymentWebhooks/internal/domain/order"
	"PaymentWebhooks/internal/domain/payment"
	"PaymentWebhooks/pkg/correlation"
)

// HTTPNotifier POSTs PurchaseCompleted to a fulfillment endpoint. It runs
// inside the recording transaction, so retries stay few and short.
type HTTPNotifier struct {
	URL   string
	HTTP  *http.Client
	Retry RetryConfig
	now   func() time.Time
}

var _ payment.PurchaseCompleter = (*HTTPNotifier)(nil)

func NewHTTPNotifier(url string, timeout time.Duration, httpClient *http.Client) *HTTPNotifier {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &HTTPNotifier{URL: url, HTTP: httpClient, Retry: DefaultRetryConfig(), now: time.Now}
}

func (n *HTTPNotifier) CompletePurchase(ctx context.Context, o order.Order) error {
	j, err := json.Marshal(newPurchaseCompleted(o, n.now()))
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	return doWithRetry(ctx, n.Retry, func() error {
		return n.post(ctx, o.ID, j)
	})
}

func (n *HTTPNotifier) post(ctx context.Context, orderID string, j []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(j))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", eventID(orderID))
	if id := correlation.FromContext(ctx); id != "" {
		req.Header.Set(correlation.HeaderName, id)
	}

	resp, err := n.HTTP.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("http: %w", err)
		}
		return fmt.Errorf("%w: http: %w", errUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		err := fmt.Errorf("fulfillment %s: %s", resp.Status, string(raw))
		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%w: %w", errUnavailable, err)
		}
		return err
	}

	slog.InfoContext(ctx, "Purchase completion delivered",
		slog.String("order_id", orderID),
		slog.Int("status", resp.StatusCode))
	return nil
}
