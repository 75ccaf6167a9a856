// Package ingest is the composition root of the ingest service: it verifies
// and parses webhook deliveries and queues them on Kafka.
package ingest

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
	"PaymentWebhooks/internal/external/kafka"
	audit_repo "PaymentWebhooks/internal/repo/audit"
	"PaymentWebhooks/internal/webhook"
	"PaymentWebhooks/internal/webhook/signature"
	"PaymentWebhooks/pkg/health"
	"PaymentWebhooks/pkg/logger"
	"PaymentWebhooks/pkg/postgres"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// Run serves the webhook endpoint until SIGINT/SIGTERM. Deliveries are
// audited in Postgres only when PG_URL is set.
func Run(cfg config.IngestConfig) error {
	logger.Setup(logger.Options{Level: cfg.LogLevel, Console: cfg.LogFormat == "console"})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	registry := health.NewRegistry(health.NewKafkaChecker(cfg.KafkaBrokers))

	var deliveries audit.DeliveryLog
	if cfg.PgURL != "" {
		pg, err := postgres.New(cfg.PgURL, postgres.MaxPoolSize(cfg.PgPoolMax))
		if err != nil {
			return fmt.Errorf("ingest - Run - postgres.New: %w", err)
		}
		defer pg.Close()

		deliveries = audit_repo.NewPgAuditRepo(pg.Pool, pg.Builder)
		registry.Add(health.NewPostgresChecker(pg.Pool))
	}

	verifier, err := signature.NewVerifier(signature.Options{
		Secret:           cfg.Gateway.Secret,
		Tolerance:        cfg.Gateway.Tolerance,
		SkipVerification: cfg.Gateway.SkipVerification,
	})
	if err != nil {
		return fmt.Errorf("ingest - Run - signature.NewVerifier: %w", err)
	}

	slog.Info("Initializing Kafka publisher",
		slog.Any("brokers", cfg.KafkaBrokers),
		slog.String("topic", cfg.KafkaWebhooksTopic))
	publisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaWebhooksTopic)
	defer func() { _ = publisher.Close() }()

	processor := webhook.NewAsyncProcessor(verifier, publisher, deliveries)

	gin.SetMode(gin.ReleaseMode)
	engine := rest.NewEngine()
	rest.NewWebhookRouter(handlers.NewWebhookHandler(processor), registry).SetUp(engine)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Ingest service started", slog.Int("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		return fmt.Errorf("ingest - Run - ListenAndServe: %w", err)
	}
	slog.Info("Shutting down Ingest service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", slog.Any("error", err))
	}

	slog.Info("Ingest service stopped")
	return nil
}
