package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotoba-app/kotoba-api/internal/store"
)

// resetRecorder records the cutoffs the jobs pass to the progress store.
// The embedded interface stays nil; the jobs only call the reset methods.
type resetRecorder struct {
	store.ProgressStore
	dailyCutoffs []time.Time
	breakCutoffs []time.Time
	resetCount   int64
}

func (r *resetRecorder) ResetDailyCounters(ctx context.Context, cutoff time.Time) (int64, error) {
	r.dailyCutoffs = append(r.dailyCutoffs, cutoff)
	return r.resetCount, nil
}

func (r *resetRecorder) ResetBreakCounters(ctx context.Context, cutoff time.Time) (int64, error) {
	r.breakCutoffs = append(r.breakCutoffs, cutoff)
	return r.resetCount, nil
}

func TestDailyResetJobUsesUTCMidnight(t *testing.T) {
	t.Parallel()
	recorder := &resetRecorder{resetCount: 3}
	job := NewDailyResetJob(recorder, nil)
	job.now = func() time.Time {
		return time.Date(2025, 6, 1, 15, 30, 45, 0, time.UTC)
	}

	require.NoError(t, job.Run(context.Background()))

	require.Len(t, recorder.dailyCutoffs, 1)
	expected := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, recorder.dailyCutoffs[0].Equal(expected),
		"cutoff must be midnight of the current UTC day")
}

func TestBreakResetJobSubtractsIdlePeriod(t *testing.T) {
	t.Parallel()
	recorder := &resetRecorder{}
	job := NewBreakResetJob(recorder, 30*time.Minute, nil)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return now }

	require.NoError(t, job.Run(context.Background()))

	require.Len(t, recorder.breakCutoffs, 1)
	assert.True(t, recorder.breakCutoffs[0].Equal(now.Add(-30*time.Minute)))
}

func TestBreakResetJobDefaultsIdlePeriod(t *testing.T) {
	t.Parallel()
	job := NewBreakResetJob(&resetRecorder{}, 0, nil)
	assert.Equal(t, 30*time.Minute, job.breakAfter)
}

func TestRunnerRunsJobsImmediately(t *testing.T) {
	t.Parallel()
	ran := make(chan string, 2)
	jobs := []Job{
		jobFunc{name: "a", fn: func(ctx context.Context) error { ran <- "a"; return nil }},
		jobFunc{name: "b", fn: func(ctx context.Context) error { ran <- "b"; return nil }},
	}

	runner := NewRunner(jobs, RunnerConfig{TickInterval: time.Hour}, nil)
	runner.Start()
	defer runner.Stop()

	assert.Equal(t, "a", <-ran)
	assert.Equal(t, "b", <-ran)
}

func TestRunnerReportsJobErrors(t *testing.T) {
	t.Parallel()
	failed := make(chan string, 1)
	jobs := []Job{
		jobFunc{name: "broken", fn: func(ctx context.Context) error {
			return assert.AnError
		}},
	}

	runner := NewRunner(jobs, RunnerConfig{TickInterval: time.Hour}, nil)
	runner.SetErrorHandler(func(job Job, err error) {
		failed <- job.Name()
	})
	runner.Start()
	defer runner.Stop()

	assert.Equal(t, "broken", <-failed)
}

// jobFunc adapts a function to the Job interface for tests.
type jobFunc struct {
	name string
	fn   func(ctx context.Context) error
}

func (j jobFunc) Name() string                  { return j.name }
func (j jobFunc) Run(ctx context.Context) error { return j.fn(ctx) }
