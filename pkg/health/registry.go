// Package health implements liveness and readiness probes for the webhook
// service and the ingest worker.
package health

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds a whole readiness round.
const DefaultTimeout = 5 * time.Second

type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

type Result struct {
	Status  Status
	Message string
}

func up() Result { return Result{Status: StatusUp} }

func down(err error) Result { return Result{Status: StatusDown, Message: err.Error()} }

// Checker probes one dependency.
type Checker interface {
	Name() string
	Check(ctx context.Context) Result
}

type Registry struct {
	checkers []Checker
}

func NewRegistry(checkers ...Checker) *Registry {
	return &Registry{checkers: checkers}
}

// Add appends a checker; Kafka and OpenSearch are only wired in some modes.
func (r *Registry) Add(c Checker) {
	r.checkers = append(r.checkers, c)
}

type CheckResult struct {
	Name      string `json:"name"`
	Status    Status `json:"status"`
	Message   string `json:"message,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

type ReadinessResponse struct {
	Status Status        `json:"status"`
	Checks []CheckResult `json:"checks,omitempty"`
}

// CheckAll runs every checker concurrently. Results keep registration order.
func (r *Registry) CheckAll(ctx context.Context) ReadinessResponse {
	if len(r.checkers) == 0 {
		return ReadinessResponse{Status: StatusUp}
	}

	results := make([]CheckResult, len(r.checkers))
	var g errgroup.Group
	for i, checker := range r.checkers {
		g.Go(func() error {
			start := time.Now()
			res := checker.Check(ctx)
			results[i] = CheckResult{
				Name:      checker.Name(),
				Status:    res.Status,
				Message:   res.Message,
				LatencyMS: time.Since(start).Milliseconds(),
			}
			return nil
		})
	}
	_ = g.Wait()

	overall := StatusUp
	for _, res := range results {
		if res.Status == StatusDown {
			overall = StatusDown
			break
		}
	}
	return ReadinessResponse{Status: overall, Checks: results}
}
