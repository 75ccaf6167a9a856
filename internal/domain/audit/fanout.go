package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Fanout writes every record to all logs and joins their errors.
type Fanout []EventLog

func (f Fanout) RecordEvent(ctx context.Context, r EventRecord) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now().UTC()
	}

	var errs []error
	for _, l := range f {
		if err := l.RecordEvent(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
