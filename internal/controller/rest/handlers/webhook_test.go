package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"PaymentWebhooks/internal/domain/order"
	"PaymentWebhooks/internal/domain/payment"
	"PaymentWebhooks/internal/webhook"
	"PaymentWebhooks/internal/webhook/dispatch"
	"PaymentWebhooks/internal/webhook/event"
	"PaymentWebhooks/internal/webhook/signature"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProcessor struct {
	got    webhook.Delivery
	result webhook.Result
	err    error
}

func (p *fakeProcessor) Process(_ context.Context, d webhook.Delivery) (webhook.Result, error) {
	p.got = d
	return p.result, p.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func serveWebhook(p webhook.Processor, body, sig string) *httptest.ResponseRecorder {
	engine := gin.New()
	h := NewWebhookHandler(p)
	engine.POST("/webhooks/payments", h.Receive)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", strings.NewReader(body))
	if sig != "" {
		req.Header.Set(signature.HeaderName, sig)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestWebhookHandler_Status(t *testing.T) {
	tests := []struct {
		name   string
		result webhook.Result
		err    error
		want   int
	}{
		{"handled", webhook.Result{Outcome: dispatch.Handled}, nil, http.StatusOK},
		{"duplicate", webhook.Result{Outcome: dispatch.DuplicateIgnored}, nil, http.StatusOK},
		{"unhandled kind", webhook.Result{Outcome: dispatch.UnhandledKindIgnored}, nil, http.StatusOK},
		{"queued", webhook.Result{Outcome: webhook.Queued}, nil, http.StatusAccepted},
		{"bad signature", webhook.Result{}, fmt.Errorf("%w: %w", signature.ErrVerification, signature.ErrInvalidSignature), http.StatusBadRequest},
		{"parse error", webhook.Result{}, fmt.Errorf("%w: missing id", event.ErrParse), http.StatusBadRequest},
		{"order not found", webhook.Result{EventID: "evt_1"}, fmt.Errorf("record: %w", order.ErrNotFound), http.StatusNotFound},
		{"missing field", webhook.Result{}, &event.MissingFieldError{Kind: event.KindCheckoutSessionCompleted, Field: "amount_total"}, http.StatusUnprocessableEntity},
		{"unmatched refund", webhook.Result{}, fmt.Errorf("refund re_1: %w", payment.ErrOriginalPaymentNotFound), http.StatusUnprocessableEntity},
		{"store failure", webhook.Result{}, errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// given
			p := &fakeProcessor{result: tt.result, err: tt.err}

			// when
			w := serveWebhook(p, `{"id":"evt_1"}`, "t=1,v1=ab")

			// then
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestWebhookHandler_PassesRawBody(t *testing.T) {
	// given
	body := "{\"id\": \"evt_1\",\n  \"type\":\"invoice.paid\"}"
	p := &fakeProcessor{result: webhook.Result{Outcome: dispatch.Handled, EventID: "evt_1", OrderID: "ord_1"}}

	// when
	w := serveWebhook(p, body, "t=1,v1=ab")

	// then
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, body, string(p.got.Payload))
	assert.Equal(t, "t=1,v1=ab", p.got.Signature)
	assert.False(t, p.got.ReceivedAt.IsZero())

	var res webhook.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, dispatch.Handled, res.Outcome)
	assert.Equal(t, "ord_1", res.OrderID)
}

func TestWebhookHandler_RejectsOversizedBody(t *testing.T) {
	p := &fakeProcessor{}

	w := serveWebhook(p, strings.Repeat("a", maxPayloadBytes+1), "t=1,v1=ab")

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Nil(t, p.got.Payload)
}
