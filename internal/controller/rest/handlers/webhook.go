package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"PaymentWebhooks/internal/webhook"
	"PaymentWebhooks/internal/webhook/signature"

	"github.com/gin-gonic/gin"
)

const maxPayloadBytes = 1 << 20

type WebhookHandler struct {
	processor webhook.Processor
}

func NewWebhookHandler(processor webhook.Processor) WebhookHandler {
	return WebhookHandler{processor: processor}
}

// Receive hands the raw body and signature header to the processor. The body
// must not be re-encoded before verification.
func (h *WebhookHandler) Receive(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxPayloadBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": "payload too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "cannot read body"})
		return
	}

	res, err := h.processor.Process(c.Request.Context(), webhook.Delivery{
		Payload:    payload,
		Signature:  c.GetHeader(signature.HeaderName),
		ReceivedAt: time.Now().UTC(),
	})
	if err != nil {
		c.JSON(webhookStatus(err), gin.H{"message": err.Error(), "event_id": res.EventID})
		return
	}

	status := http.StatusOK
	if res.Outcome == webhook.Queued {
		status = http.StatusAccepted
	}
	c.JSON(status, res)
}
