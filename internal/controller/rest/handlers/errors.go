package handlers

import (
	"errors"
	"net/http"

	"PaymentWebhooks/internal/domain/order"
	"PaymentWebhooks/internal/domain/payment"
	"PaymentWebhooks/internal/webhook/event"
	"PaymentWebhooks/internal/webhook/signature"
)

// webhookStatus maps a processing error to the status returned to the
// processor. Any non-2xx status makes the processor redeliver.
func webhookStatus(err error) int {
	switch {
	case errors.Is(err, signature.ErrVerification), errors.Is(err, event.ErrParse):
		return http.StatusBadRequest
	case errors.Is(err, order.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, event.ErrMissingField), errors.Is(err, payment.ErrOriginalPaymentNotFound):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
