package rest

import (
	"PaymentWebhooks/pkg/logger"
	"PaymentWebhooks/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// NewEngine returns a gin engine with the middleware shared by both services.
func NewEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(
		metrics.GinMiddleware(),
		logger.CorrelationMiddleware(),
		logger.RequestLogger(),
		gin.Recovery(),
	)
	return engine
}
