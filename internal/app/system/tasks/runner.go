// internal/app/system/tasks/runner.go

// Package tasks runs the app's periodic background jobs: content snapshot
// refresh, expired-token cleanup, attempt-log pruning, and the TLS expiry
// check.
package tasks

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is one periodic task. Run is called once at startup and then every
// Interval until the runner stops.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Runner schedules registered jobs on their intervals.
type Runner struct {
	logger *zap.Logger
	jobs   []Job
	wg     sync.WaitGroup
	cancel context.CancelFunc

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// New creates a Runner. Register jobs before calling Start.
func New(logger *zap.Logger) *Runner {
	return &Runner{
		logger:   logger,
		inFlight: make(map[string]struct{}),
	}
}

// Register adds a job to the schedule.
func (r *Runner) Register(job Job) {
	r.jobs = append(r.jobs, job)
}

// Start launches one goroutine per registered job.
func (r *Runner) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	for _, job := range r.jobs {
		r.wg.Add(1)
		go r.loop(ctx, job)
	}

	r.logger.Info("background jobs started", zap.Int("jobs", len(r.jobs)))
}

// Stop cancels all jobs and waits for them to finish. Returns ctx.Err() if
// the deadline passes with jobs still running.
func (r *Runner) Stop(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("background jobs stopped")
		return nil
	case <-ctx.Done():
		r.logger.Warn("background job shutdown timed out",
			zap.Strings("still_running", r.stillRunning()))
		return ctx.Err()
	}
}

// RunOnce runs a registered job immediately, outside its schedule. Unknown
// names are a no-op.
func (r *Runner) RunOnce(ctx context.Context, name string) error {
	for _, job := range r.jobs {
		if job.Name == name {
			return job.Run(ctx)
		}
	}
	return nil
}

func (r *Runner) loop(ctx context.Context, job Job) {
	defer r.wg.Done()

	// First run happens right away so the content snapshot is warm before
	// the first interval elapses.
	r.run(ctx, job)

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("job stopped", zap.String("job", job.Name))
			return
		case <-ticker.C:
			r.run(ctx, job)
		}
	}
}

func (r *Runner) run(ctx context.Context, job Job) {
	r.track(job.Name, true)
	defer r.track(job.Name, false)

	start := time.Now()
	err := job.Run(ctx)
	switch {
	case err == nil:
		r.logger.Debug("job completed",
			zap.String("job", job.Name),
			zap.Duration("duration", time.Since(start)))
	case ctx.Err() != nil:
		// Shutdown, not a failure.
		r.logger.Debug("job cancelled",
			zap.String("job", job.Name),
			zap.Duration("duration", time.Since(start)))
	default:
		r.logger.Error("job failed",
			zap.String("job", job.Name),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
	}
}

func (r *Runner) track(name string, running bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if running {
		r.inFlight[name] = struct{}{}
	} else {
		delete(r.inFlight, name)
	}
}

func (r *Runner) stillRunning() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.inFlight))
	for name := range r.inFlight {
		names = append(names, name)
	}
	return names
}
