package task

import "context"

// Job is one unit of periodic maintenance work. Jobs must be safe to run
// repeatedly; every tick runs every job.
type Job interface {
	// Name identifies the job in logs.
	Name() string

	// Run performs one pass of the job's work.
	Run(ctx context.Context) error
}
