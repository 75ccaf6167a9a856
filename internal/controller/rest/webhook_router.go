package rest

import (
	"PaymentWebhooks/internal/controller/rest/handlers"
	"PaymentWebhooks/pkg/health"
	"PaymentWebhooks/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// WebhookRouter is the ingest service router: webhook intake and ops only.
type WebhookRouter struct {
	webhook handlers.WebhookHandler
	health  *health.Registry
}

func NewWebhookRouter(webhook handlers.WebhookHandler, registry *health.Registry) *WebhookRouter {
	return &WebhookRouter{webhook: webhook, health: registry}
}

func (r *WebhookRouter) SetUp(engine *gin.Engine) {
	health.Register(engine, r.health)
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	engine.POST(WebhookPath, r.webhook.Receive)
}
