package utils

import (
	"time"

	"github.com/rs/zerolog"
)

// Timer measures an operation and logs its duration, escalating the log
// level when the operation exceeds SlowThreshold.
type Timer struct {
	start         time.Time
	name          string
	log           zerolog.Logger
	SlowThreshold time.Duration
}

// NewTimer creates a new timer with the given name
func NewTimer(name string, log zerolog.Logger) *Timer {
	return &Timer{
		start:         time.Now(),
		name:          name,
		log:           log,
		SlowThreshold: 2 * time.Second,
	}
}

// Stop stops the timer and logs the duration
func (t *Timer) Stop() time.Duration {
	duration := time.Since(t.start)

	event := t.log.Debug()
	if t.SlowThreshold > 0 && duration > t.SlowThreshold {
		event = t.log.Warn().Dur("threshold", t.SlowThreshold)
	}

	event.
		Str("operation", t.name).
		Dur("duration_ms", duration).
		Msg("Performance measurement")

	return duration
}
