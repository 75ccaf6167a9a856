package handlers

import (
	"net/http"

	"PaymentWebhooks/internal/domain/audit"

	"github.com/gin-gonic/gin"
)

type DeliveryHandler struct {
	log audit.DeliveryLog
}

func NewDeliveryHandler(log audit.DeliveryLog) DeliveryHandler {
	return DeliveryHandler{log: log}
}

func (h *DeliveryHandler) List(c *gin.Context) {
	var query audit.DeliveryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	res, err := h.log.GetDeliveries(c.Request.Context(), query.Normalize())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deliveries": res})
}
