package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"PaymentWebhooks/internal/domain/audit"

	"github.com/google/uuid"
	"github.com/opensearch-project/opensearch-go"
)

// EventSink indexes webhook dispatch results for search. It is a secondary
// copy of webhook_events; Postgres stays authoritative.
type EventSink struct {
	client *opensearch.Client
	index  string
}

var _ audit.EventLog = (*EventSink)(nil)

func NewClient(urls []string) (*opensearch.Client, error) {
	if len(urls) == 0 {
		return nil, errors.New("no OpenSearch addresses configured")
	}

	client, err := opensearch.NewClient(opensearch.Config{
		Addresses: urls,
		Transport: &http.Transport{MaxIdleConnsPerHost: 10},
	})
	if err != nil {
		return nil, fmt.Errorf("opensearch client: %w", err)
	}
	return client, nil
}

// NewEventSink creates the index on first use.
func NewEventSink(ctx context.Context, client *opensearch.Client, index string) (*EventSink, error) {
	sink := &EventSink{client: client, index: index}
	if err := sink.ensureIndex(ctx); err != nil {
		return nil, err
	}
	return sink, nil
}

func (s *EventSink) ensureIndex(ctx context.Context) error {
	res, err := s.client.Indices.Exists([]string{s.index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("indices.exists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body := map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				"id":          map[string]any{"type": "keyword"},
				"event_id":    map[string]any{"type": "keyword"},
				"kind":        map[string]any{"type": "keyword"},
				"order_id":    map[string]any{"type": "keyword"},
				"reference":   map[string]any{"type": "keyword"},
				"outcome":     map[string]any{"type": "keyword"},
				"error":       map[string]any{"type": "text"},
				"recorded_at": map[string]any{"type": "date"},
			},
		},
	}
	buf, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode index mapping: %w", err)
	}

	cr, err := s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithBody(bytes.NewReader(buf)),
		s.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("indices.create: %w", err)
	}
	defer cr.Body.Close()
	if cr.IsError() {
		return fmt.Errorf("indices.create error: %s", cr.String())
	}
	return nil
}

// RecordEvent indexes r under its ID, so a retried write overwrites the same
// document.
func (s *EventSink) RecordEvent(ctx context.Context, r audit.EventRecord) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now()
	}
	r.RecordedAt = r.RecordedAt.UTC()

	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode event record: %w", err)
	}

	res, err := s.client.Index(
		s.index,
		bytes.NewReader(payload),
		s.client.Index.WithDocumentID(r.ID.String()),
		s.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index event %s: %w", r.EventID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index event %s: %s", r.EventID, res.String())
	}
	return nil
}
