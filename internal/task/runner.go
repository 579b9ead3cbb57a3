package task

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RunnerConfig holds configuration for the maintenance runner.
type RunnerConfig struct {
	// TickInterval determines how often the jobs run.
	// If zero, defaults to one minute.
	TickInterval time.Duration
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		TickInterval: time.Minute,
	}
}

// Runner executes a fixed set of maintenance jobs on a ticker until stopped.
type Runner struct {
	jobs       []Job
	config     RunnerConfig
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	logger     *slog.Logger
	errHandler func(job Job, err error)
}

// NewRunner creates a Runner over the given jobs.
// If logger is nil, a default logger will be used.
func NewRunner(jobs []Job, config RunnerConfig, logger *slog.Logger) *Runner {
	if config.TickInterval == 0 {
		config.TickInterval = time.Minute
	}

	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "task_runner"))

	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		jobs:       jobs,
		config:     config,
		ctx:        ctx,
		cancelFunc: cancel,
		logger:     logger,
		errHandler: func(job Job, err error) {
			logger.Error("maintenance job failed",
				"job", job.Name(),
				"error", err)
		},
	}
}

// SetErrorHandler allows setting a custom error handler function.
func (r *Runner) SetErrorHandler(handler func(job Job, err error)) {
	r.errHandler = handler
}

// Start launches the ticker loop. Jobs also run once immediately so a
// restart does not postpone overdue resets by a full interval.
func (r *Runner) Start() {
	r.wg.Add(1)
	go r.loop()
}

// Stop cancels the loop and waits for an in-flight pass to finish.
func (r *Runner) Stop() {
	r.cancelFunc()
	r.wg.Wait()
}

func (r *Runner) loop() {
	defer r.wg.Done()

	r.runAll()

	ticker := time.NewTicker(r.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			r.logger.Debug("stopping maintenance runner")
			return
		case <-ticker.C:
			r.runAll()
		}
	}
}

// runAll executes every job once. A failing job does not stop the others.
func (r *Runner) runAll() {
	for _, job := range r.jobs {
		select {
		case <-r.ctx.Done():
			return
		default:
		}

		if err := job.Run(r.ctx); err != nil {
			r.errHandler(job, err)
		}
	}
}
