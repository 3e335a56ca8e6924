package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

const retentionTimeout = 5 * time.Minute

// RetentionJob deletes measurements older than a number of days
type RetentionJob struct {
	purger MeasurementPurger
	days   int
	now    func() time.Time
	log    zerolog.Logger
}

// NewRetentionJob creates a new RetentionJob. days <= 0 keeps everything.
func NewRetentionJob(purger MeasurementPurger, days int) *RetentionJob {
	return &RetentionJob{
		purger: purger,
		days:   days,
		now:    time.Now,
		log:    zerolog.Nop(),
	}
}

// SetLogger sets the logger for the job
func (j *RetentionJob) SetLogger(log zerolog.Logger) {
	j.log = log.With().Str("job", j.Name()).Logger()
}

// Name returns the job name
func (j *RetentionJob) Name() string {
	return "measurement_retention"
}

// Enabled reports whether the job has a retention window
func (j *RetentionJob) Enabled() bool {
	return j.days > 0
}

// Cutoff returns the oldest instant that is kept
func (j *RetentionJob) Cutoff() time.Time {
	return j.now().AddDate(0, 0, -j.days)
}

// Run executes the purge
func (j *RetentionJob) Run() error {
	if !j.Enabled() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), retentionTimeout)
	defer cancel()

	cutoff := j.Cutoff()
	deleted, err := j.purger.PurgeBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to apply retention: %w", err)
	}

	j.log.Info().
		Int64("deleted", deleted).
		Time("cutoff", cutoff).
		Int("retention_days", j.days).
		Msg("Retention completed")

	return nil
}
