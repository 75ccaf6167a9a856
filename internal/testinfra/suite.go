//go:build integration
// +build integration

// Package testinfra starts throwaway containers for integration tests.
package testinfra

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

type TestSuite struct {
	Postgres *PostgresContainer
	Kafka    *KafkaContainer
	Wiremock *WiremockContainer
}

type SuiteOptions struct {
	WithKafka bool
	// WithWiremock stubs the fulfillment endpoint with the mappings under
	// MappingsPath.
	WithWiremock bool
	MappingsPath string
}

// NewTestSuite starts the requested containers in parallel. On failure the
// ones that did start are terminated.
func NewTestSuite(ctx context.Context, opts SuiteOptions) (*TestSuite, error) {
	suite := &TestSuite{}
	var g errgroup.Group

	g.Go(func() (err error) {
		suite.Postgres, err = NewPostgres(ctx)
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		return nil
	})
	if opts.WithKafka {
		g.Go(func() (err error) {
			suite.Kafka, err = NewKafka(ctx)
			if err != nil {
				return fmt.Errorf("kafka: %w", err)
			}
			return nil
		})
	}
	if opts.WithWiremock {
		g.Go(func() (err error) {
			suite.Wiremock, err = NewWiremock(ctx, opts.MappingsPath)
			if err != nil {
				return fmt.Errorf("wiremock: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		suite.Cleanup(ctx)
		return nil, fmt.Errorf("failed to start containers: %w", err)
	}
	return suite, nil
}

func (s *TestSuite) Cleanup(ctx context.Context) {
	if s.Wiremock != nil {
		s.Wiremock.Cleanup(ctx)
	}
	if s.Kafka != nil {
		s.Kafka.Cleanup(ctx)
	}
	if s.Postgres != nil {
		s.Postgres.Cleanup(ctx)
	}
}
