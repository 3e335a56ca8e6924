package scheduler

import (
	"context"
	"time"

	"github.com/aristath/dailychart/internal/events"
)

// EventEmitter defines the contract for event emission
type EventEmitter interface {
	Emit(module string, data events.EventData)
}

// MeasurementPurger deletes measurements older than a cutoff
type MeasurementPurger interface {
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
