package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	ModeSync  = "sync"
	ModeKafka = "kafka"

	EnvProduction = "production"
)

// Gateway holds the processor settings threaded into the verifier and the
// dispatcher.
type Gateway struct {
	Name              string        `env:"GATEWAY_NAME" envDefault:"stripe"`
	Secret            string        `env:"WEBHOOK_SECRET"`
	Tolerance         time.Duration `env:"WEBHOOK_TOLERANCE" envDefault:"5m"`
	SkipVerification  bool          `env:"WEBHOOK_SKIP_VERIFICATION" envDefault:"false"`
	ProcessingTimeout time.Duration `env:"WEBHOOK_PROCESSING_TIMEOUT" envDefault:"5s"`
}

type Config struct {
	Port      int    `env:"PORT" envDefault:"3000"`
	PgURL     string `env:"PG_URL,required"`
	PgPoolMax int    `env:"PG_POOL_MAX" envDefault:"10"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	AppEnv    string `env:"APP_ENV" envDefault:"development"`

	Gateway Gateway

	// "sync" dispatches in the request, "kafka" consumes deliveries queued by cmd/ingest.
	WebhookMode string `env:"WEBHOOK_MODE" envDefault:"sync"`

	KafkaBrokers               []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaWebhooksTopic         string   `env:"KAFKA_WEBHOOKS_TOPIC" envDefault:"webhooks.payments"`
	KafkaWebhooksDLQTopic      string   `env:"KAFKA_WEBHOOKS_DLQ_TOPIC" envDefault:"webhooks.payments.dlq"`
	KafkaWebhooksConsumerGroup string   `env:"KAFKA_WEBHOOKS_CONSUMER_GROUP" envDefault:"payhook-webhooks"`
	KafkaFulfillmentTopic      string   `env:"KAFKA_FULFILLMENT_TOPIC"`

	FulfillmentURL     string        `env:"FULFILLMENT_URL"`
	FulfillmentTimeout time.Duration `env:"FULFILLMENT_TIMEOUT" envDefault:"3s"`

	OpensearchUrls               []string `env:"OPENSEARCH_URLS" envSeparator:","`
	OpensearchIndexWebhookEvents string   `env:"OPENSEARCH_INDEX_WEBHOOK_EVENTS" envDefault:"webhook-events"`
}

// IngestConfig is the configuration of cmd/ingest, which only verifies and
// queues deliveries.
type IngestConfig struct {
	Port      int    `env:"PORT" envDefault:"3001"`
	PgURL     string `env:"PG_URL"`
	PgPoolMax int    `env:"PG_POOL_MAX" envDefault:"5"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	AppEnv    string `env:"APP_ENV" envDefault:"development"`

	Gateway Gateway

	KafkaBrokers       []string `env:"KAFKA_BROKERS,required" envSeparator:","`
	KafkaWebhooksTopic string   `env:"KAFKA_WEBHOOKS_TOPIC" envDefault:"webhooks.payments"`
}

var (
	ErrSkipWithSecret       = errors.New("WEBHOOK_SKIP_VERIFICATION cannot be combined with WEBHOOK_SECRET")
	ErrSkipInProduction     = errors.New("WEBHOOK_SKIP_VERIFICATION is not allowed in production")
	ErrMissingSecret        = errors.New("WEBHOOK_SECRET is required")
	ErrUnknownWebhookMode   = errors.New("WEBHOOK_MODE must be sync or kafka")
	ErrKafkaBrokersRequired = errors.New("KAFKA_BROKERS is required in kafka mode")
)

func New() (Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func NewIngestConfig() (IngestConfig, error) {
	c, err := env.ParseAs[IngestConfig]()
	if err != nil {
		return IngestConfig{}, err
	}
	if err := c.Gateway.Validate(c.AppEnv); err != nil {
		return IngestConfig{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if err := c.Gateway.Validate(c.AppEnv); err != nil {
		return err
	}
	switch c.WebhookMode {
	case ModeSync:
	case ModeKafka:
		if len(c.KafkaBrokers) == 0 {
			return ErrKafkaBrokersRequired
		}
	default:
		return ErrUnknownWebhookMode
	}
	return nil
}

// Validate keeps the verification bypass unreachable whenever a live secret
// is configured or the service runs in production.
func (g Gateway) Validate(appEnv string) error {
	if g.SkipVerification {
		if g.Secret != "" {
			return ErrSkipWithSecret
		}
		if appEnv == EnvProduction {
			return ErrSkipInProduction
		}
		return nil
	}
	if g.Secret == "" {
		return ErrMissingSecret
	}
	return nil
}

func (c Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func (c Config) OpenSearchEnabled() bool {
	return len(c.OpensearchUrls) > 0
}
