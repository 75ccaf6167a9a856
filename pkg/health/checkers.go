package health

import (
	"context"
	"errors"
	"fmt"

	"github.com/opensearch-project/opensearch-go"
	"github.com/opensearch-project/opensearch-go/opensearchapi"
	"github.com/segmentio/kafka-go"
)

var errNoBrokers = errors.New("no brokers configured")

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PostgresChecker struct {
	db Pinger
}

func NewPostgresChecker(db Pinger) *PostgresChecker {
	return &PostgresChecker{db: db}
}

func (c *PostgresChecker) Name() string { return "postgres" }

func (c *PostgresChecker) Check(ctx context.Context) Result {
	if err := c.db.Ping(ctx); err != nil {
		return down(err)
	}
	return up()
}

// KafkaChecker succeeds when any broker accepts a connection.
type KafkaChecker struct {
	brokers []string
	dial    func(ctx context.Context, network, address string) (*kafka.Conn, error)
}

func NewKafkaChecker(brokers []string) *KafkaChecker {
	return &KafkaChecker{brokers: brokers, dial: kafka.DialContext}
}

func (c *KafkaChecker) Name() string { return "kafka" }

func (c *KafkaChecker) Check(ctx context.Context) Result {
	if len(c.brokers) == 0 {
		return down(errNoBrokers)
	}

	var errs []error
	for _, broker := range c.brokers {
		conn, err := c.dial(ctx, "tcp", broker)
		if err == nil {
			_ = conn.Close()
			return up()
		}
		errs = append(errs, fmt.Errorf("%s: %w", broker, err))
	}
	return down(fmt.Errorf("all brokers unreachable: %w", errors.Join(errs...)))
}

// OpenSearchChecker pings the audit search cluster.
type OpenSearchChecker struct {
	client *opensearch.Client
}

func NewOpenSearchChecker(client *opensearch.Client) *OpenSearchChecker {
	return &OpenSearchChecker{client: client}
}

func (c *OpenSearchChecker) Name() string { return "opensearch" }

func (c *OpenSearchChecker) Check(ctx context.Context) Result {
	res, err := opensearchapi.PingRequest{}.Do(ctx, c.client)
	if err != nil {
		return down(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return down(fmt.Errorf("ping status %d", res.StatusCode))
	}
	return up()
}
