package scheduler

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	err  error
	runs int
}

func (j *countingJob) Run() error {
	j.runs++
	return j.err
}

func (j *countingJob) Name() string { return "counting" }

func TestAddJobValidatesSchedule(t *testing.T) {
	s := New(zerolog.Nop())

	require.NoError(t, s.AddJob("0 0 */1 * * *", &countingJob{}))
	assert.Error(t, s.AddJob("not a schedule", &countingJob{}))
}

func TestRunNowExecutesOutsideSchedule(t *testing.T) {
	s := New(zerolog.Nop())

	job := &countingJob{}
	require.NoError(t, s.RunNow(job))
	assert.Equal(t, 1, job.runs)

	job.err = errors.New("quote service down")
	assert.Error(t, s.RunNow(job))
}

func TestRunSwallowsJobFailure(t *testing.T) {
	s := New(zerolog.Nop())

	job := &countingJob{err: errors.New("quote service down")}
	s.run(job)
	assert.Equal(t, 1, job.runs)
}
