package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
)

// Runner runs workers concurrently with one handler and closes each worker
// when it stops.
type Runner struct {
	workers []Worker
	handler MessageHandler
}

func NewRunner(workers []Worker, handler MessageHandler) *Runner {
	return &Runner{workers: workers, handler: handler}
}

// Start blocks until ctx is cancelled or a worker fails. A panicking worker
// is reported as an error.
func (r *Runner) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for i, w := range r.workers {
		g.Go(func() (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					slog.ErrorContext(ctx, "Worker panic recovered",
						slog.Int("worker_idx", i),
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())))
					err = fmt.Errorf("worker %d panicked: %v", i, rec)
				}
				if cerr := w.Close(); cerr != nil {
					slog.ErrorContext(ctx, "Failed to close worker",
						slog.Int("worker_idx", i),
						slog.Any("error", cerr))
				}
			}()
			return w.Start(ctx, r.handler)
		})
	}

	return g.Wait()
}
