package rest

import (
	"PaymentWebhooks/internal/controller/rest/handlers"
	"PaymentWebhooks/pkg/health"
	"PaymentWebhooks/pkg/metrics"

	"github.com/gin-gonic/gin"
)

const WebhookPath = "/webhooks/payments"

// APIRouter serves reads and ops endpoints, plus the webhook endpoint in sync
// mode.
type APIRouter struct {
	webhook    handlers.WebhookHandler
	order      handlers.OrderHandler
	delivery   handlers.DeliveryHandler
	health     *health.Registry
	useWebhook bool
}

func NewAPIRouter(
	webhook handlers.WebhookHandler,
	order handlers.OrderHandler,
	delivery handlers.DeliveryHandler,
	registry *health.Registry,
	includeWebhooks bool,
) *APIRouter {
	return &APIRouter{
		webhook:    webhook,
		order:      order,
		delivery:   delivery,
		health:     registry,
		useWebhook: includeWebhooks,
	}
}

func (r *APIRouter) SetUp(engine *gin.Engine) {
	health.Register(engine, r.health)
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	if r.useWebhook {
		engine.POST(WebhookPath, r.webhook.Receive)
	}

	engine.GET("/orders/:order_id", r.order.Get)
	engine.GET("/orders/:order_id/payments", r.order.GetPayments)
	engine.GET("/webhooks/deliveries", r.delivery.List)
}
