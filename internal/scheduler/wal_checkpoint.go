package scheduler

import (
	"fmt"
	"time"

	"github.com/aristath/dailychart/internal/database"
	"github.com/aristath/dailychart/internal/events"
	"github.com/rs/zerolog"
)

// walWarnFrames is the WAL size above which a checkpoint is logged as a warning
const walWarnFrames = 1000

// WALCheckpointJob checkpoints the measurements database WAL
type WALCheckpointJob struct {
	db      *database.DB
	mode    string
	emitter EventEmitter
	log     zerolog.Logger
}

// NewWALCheckpointJob creates a new WALCheckpointJob using mode (PASSIVE,
// FULL, RESTART or TRUNCATE). emitter may be nil.
func NewWALCheckpointJob(db *database.DB, mode string, emitter EventEmitter) *WALCheckpointJob {
	if mode == "" {
		mode = "PASSIVE"
	}
	return &WALCheckpointJob{
		db:      db,
		mode:    mode,
		emitter: emitter,
		log:     zerolog.Nop(),
	}
}

// SetLogger sets the logger for the job
func (j *WALCheckpointJob) SetLogger(log zerolog.Logger) {
	j.log = log.With().Str("job", j.Name()).Logger()
}

// Name returns the job name
func (j *WALCheckpointJob) Name() string {
	return "wal_checkpoint"
}

// Run executes the checkpoint
func (j *WALCheckpointJob) Run() error {
	if j.db == nil {
		return nil
	}

	start := time.Now()
	walFrames, checkpointed, err := j.db.WALCheckpoint(j.mode)
	if err != nil {
		return fmt.Errorf("failed to checkpoint %s: %w", j.db.Name(), err)
	}
	duration := time.Since(start)

	if walFrames > walWarnFrames {
		j.log.Warn().
			Str("database", j.db.Name()).
			Int("wal_frames", walFrames).
			Int("checkpointed", checkpointed).
			Msg("WAL file is large")
	} else {
		j.log.Debug().
			Str("database", j.db.Name()).
			Int("wal_frames", walFrames).
			Int("checkpointed", checkpointed).
			Msg("WAL checkpoint completed")
	}

	if j.emitter != nil {
		j.emitter.Emit("scheduler", &events.MaintenanceCompletedData{
			Job:        j.Name(),
			WALFrames:  walFrames,
			DurationMs: duration.Milliseconds(),
		})
	}

	return nil
}
