package handlers

import (
	"errors"
	"net/http"

	"PaymentWebhooks/internal/domain/order"
	"PaymentWebhooks/internal/domain/payment"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service *order.Service
	ledger  payment.LedgerRepo
}

func NewOrderHandler(s *order.Service, ledger payment.LedgerRepo) OrderHandler {
	return OrderHandler{service: s, ledger: ledger}
}

func (h *OrderHandler) Get(c *gin.Context) {
	res, err := h.service.GetOrder(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}

// GetPayments lists the ledger entries of an order, refunds included.
func (h *OrderHandler) GetPayments(c *gin.Context) {
	orderID := c.Param("order_id")
	if _, err := h.service.GetOrder(c.Request.Context(), orderID); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	entries, err := h.ledger.GetEntries(c.Request.Context(), orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if entries == nil {
		entries = []payment.Entry{}
	}

	c.JSON(http.StatusOK, gin.H{"order_id": orderID, "payments": entries})
}
