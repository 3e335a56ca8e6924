package scheduler

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	name string
	err  error
	runs atomic.Int32
}

func (j *countingJob) Name() string { return j.name }

func (j *countingJob) Run() error {
	j.runs.Add(1)
	return j.err
}

func TestScheduler_AddJob(t *testing.T) {
	s := New(zerolog.New(nil).Level(zerolog.Disabled))

	require.NoError(t, s.AddJob("0 0 * * * *", &countingJob{name: "hourly"}))
	require.NoError(t, s.AddJob("@every 1h", &countingJob{name: "every"}))
	assert.Equal(t, 2, s.JobCount())

	// Five-field schedules are rejected; the seconds field is required
	assert.Error(t, s.AddJob("0 * * * *", &countingJob{name: "five_fields"}))
	assert.Error(t, s.AddJob("not a schedule", &countingJob{name: "garbage"}))
	assert.Equal(t, 2, s.JobCount())
}

func TestScheduler_RunsJobsOnSchedule(t *testing.T) {
	s := New(zerolog.New(nil).Level(zerolog.Disabled))
	job := &countingJob{name: "fast"}
	failing := &countingJob{name: "failing", err: errors.New("boom")}

	require.NoError(t, s.AddJob("* * * * * *", job))
	require.NoError(t, s.AddJob("* * * * * *", failing))

	s.Start()
	assert.Eventually(t, func() bool {
		return job.runs.Load() > 0 && failing.runs.Load() > 0
	}, 3*time.Second, 50*time.Millisecond)
	s.Stop()
}

func TestScheduler_RunNow(t *testing.T) {
	s := New(zerolog.New(nil).Level(zerolog.Disabled))

	job := &countingJob{name: "manual"}
	require.NoError(t, s.RunNow(job))
	assert.Equal(t, int32(1), job.runs.Load())

	failing := &countingJob{name: "failing", err: errors.New("boom")}
	assert.EqualError(t, s.RunNow(failing), "boom")
}
