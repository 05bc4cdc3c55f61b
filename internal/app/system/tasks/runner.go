// internal/app/system/tasks/runner.go
package tasks

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is a unit of periodic background work.
type Job struct {
	Name     string
	Interval time.Duration
	// Timeout bounds a single run. Zero means 30 seconds.
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

// Runner runs each Job on its own ticker until stopped.
type Runner struct {
	jobs   []Job
	log    *zap.Logger
	stopCh chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

// NewRunner creates a runner for jobs.
func NewRunner(logger *zap.Logger, jobs ...Job) *Runner {
	return &Runner{
		jobs:   jobs,
		log:    logger,
		stopCh: make(chan struct{}),
	}
}

// Start launches one goroutine per job.
func (r *Runner) Start() {
	for _, j := range r.jobs {
		r.wg.Add(1)
		go r.loop(j)
		r.log.Info("background job started",
			zap.String("job", j.Name),
			zap.Duration("interval", j.Interval))
	}
}

// Stop signals every job to stop and waits for in-flight runs to finish.
// It is safe to call more than once.
func (r *Runner) Stop() {
	r.once.Do(func() {
		close(r.stopCh)
		r.wg.Wait()
		r.log.Info("background jobs stopped")
	})
}

func (r *Runner) loop(j Job) {
	defer r.wg.Done()

	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.RunOnce(j)
		}
	}
}

// RunOnce executes j a single time, logging any failure.
func (r *Runner) RunOnce(j Job) {
	timeout := j.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := j.Run(ctx); err != nil {
		r.log.Error("background job failed", zap.String("job", j.Name), zap.Error(err))
	}
}
