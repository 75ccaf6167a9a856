package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PaymentWebhooks/config"
	"PaymentWebhooks/internal/controller/rest"
	"PaymentWebhooks/internal/controller/rest/handlers"
	"PaymentWebhooks/internal/domain/audit"
	"PaymentWebhooks/internal/domain/order"
	"PaymentWebhooks/internal/domain/payment"
	"PaymentWebhooks/internal/external/fulfillment"
	"PaymentWebhooks/internal/external/kafka"
	"PaymentWebhooks/internal/external/opensearch"
	audit_repo "PaymentWebhooks/internal/repo/audit"
	payment_repo "PaymentWebhooks/internal/repo/payment"
	"PaymentWebhooks/internal/webhook"
	"PaymentWebhooks/internal/webhook/dispatch"
	"PaymentWebhooks/internal/webhook/signature"
	"PaymentWebhooks/pkg/health"
	"PaymentWebhooks/pkg/logger"
	"PaymentWebhooks/pkg/postgres"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// Run serves the API and, in kafka mode, consumes queued deliveries. It
// returns after SIGINT/SIGTERM once the server and workers have stopped.
func Run(cfg config.Config) error {
	logger.Setup(logger.Options{Level: cfg.LogLevel, Console: cfg.LogFormat == "console"})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pg, err := postgres.New(cfg.PgURL, postgres.MaxPoolSize(cfg.PgPoolMax))
	if err != nil {
		return fmt.Errorf("app - Run - postgres.New: %w", err)
	}
	defer pg.Close()

	if err := ApplyMigrations(cfg.PgURL, MigrationFS); err != nil {
		return fmt.Errorf("app - Run - ApplyMigrations: %w", err)
	}

	registry := health.NewRegistry(health.NewPostgresChecker(pg.Pool))

	store := payment_repo.NewPgStore(pg)
	auditRepo := audit_repo.NewPgAuditRepo(pg.Pool, pg.Builder)
	events := audit.Fanout{auditRepo}

	if cfg.OpenSearchEnabled() {
		client, err := opensearch.NewClient(cfg.OpensearchUrls)
		if err != nil {
			return fmt.Errorf("app - Run - opensearch.NewClient: %w", err)
		}
		sink, err := opensearch.NewEventSink(ctx, client, cfg.OpensearchIndexWebhookEvents)
		if err != nil {
			return fmt.Errorf("app - Run - opensearch.NewEventSink: %w", err)
		}
		events = append(events, sink)
		registry.Add(health.NewOpenSearchChecker(client))
	}
	if cfg.KafkaEnabled() {
		registry.Add(health.NewKafkaChecker(cfg.KafkaBrokers))
	}

	completer, closeCompleter := newCompleter(cfg)
	defer closeCompleter()

	verifier, err := signature.NewVerifier(signature.Options{
		Secret:           cfg.Gateway.Secret,
		Tolerance:        cfg.Gateway.Tolerance,
		SkipVerification: cfg.Gateway.SkipVerification,
	})
	if err != nil {
		return fmt.Errorf("app - Run - signature.NewVerifier: %w", err)
	}
	if cfg.Gateway.SkipVerification {
		slog.Warn("Webhook signature verification is disabled", slog.String("app_env", cfg.AppEnv))
	}

	dispatcher := dispatch.NewDispatcher(
		payment.NewRecorder(store, completer, cfg.Gateway.Name),
		payment.NewRefundHandler(store, events, cfg.Gateway.Name),
	)
	processor := webhook.NewSyncProcessor(verifier, dispatcher, auditRepo, events, cfg.Gateway.ProcessingTimeout)

	gin.SetMode(gin.ReleaseMode)
	engine := rest.NewEngine()
	router := rest.NewAPIRouter(
		handlers.NewWebhookHandler(processor),
		handlers.NewOrderHandler(order.NewService(store), store),
		handlers.NewDeliveryHandler(auditRepo),
		registry,
		cfg.WebhookMode == config.ModeSync,
	)
	router.SetUp(engine)

	var workersDone <-chan error
	if cfg.WebhookMode == config.ModeKafka {
		slog.Info("Webhook mode: kafka - starting consumer")
		workersDone = StartWorkers(ctx, cfg, processor)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("API service started",
			slog.Int("port", cfg.Port),
			slog.String("webhook_mode", cfg.WebhookMode))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		return fmt.Errorf("app - Run - ListenAndServe: %w", err)
	}
	slog.Info("Shutting down API service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", slog.Any("error", err))
	}

	if workersDone != nil {
		select {
		case <-workersDone:
		case <-shutdownCtx.Done():
			slog.Warn("Webhook consumer did not stop in time")
		}
	}

	slog.Info("API service stopped")
	return nil
}

// newCompleter prefers Kafka, then HTTP, then logging only.
func newCompleter(cfg config.Config) (payment.PurchaseCompleter, func()) {
	switch {
	case cfg.KafkaEnabled() && cfg.KafkaFulfillmentTopic != "":
		publisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaFulfillmentTopic)
		return fulfillment.NewKafkaNotifier(publisher), func() { _ = publisher.Close() }
	case cfg.FulfillmentURL != "":
		return fulfillment.NewHTTPNotifier(cfg.FulfillmentURL, cfg.FulfillmentTimeout, nil), func() {}
	default:
		return fulfillment.LogNotifier{}, func() {}
	}
}
