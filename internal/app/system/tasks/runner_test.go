// internal/app/system/tasks/runner_test.go
package tasks_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dalemusser/glowsite/internal/app/system/tasks"
	"go.uber.org/zap"
)

func countingJob(name string, interval time.Duration, count *atomic.Int32) tasks.Job {
	return tasks.Job{
		Name:     name,
		Interval: interval,
		Run: func(ctx context.Context) error {
			count.Add(1)
			return nil
		},
	}
}

func TestRunsImmediatelyOnStart(t *testing.T) {
	runner := tasks.New(zap.NewNop())

	var runs atomic.Int32
	runner.Register(countingJob("refresh", time.Hour, &runs))
	runner.Start()

	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := runner.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}

	if runs.Load() != 1 {
		t.Errorf("runs = %d, want 1", runs.Load())
	}
}

func TestRunsAllRegisteredJobs(t *testing.T) {
	runner := tasks.New(zap.NewNop())

	var a, b atomic.Int32
	runner.Register(countingJob("job-a", 30*time.Millisecond, &a))
	runner.Register(countingJob("job-b", 30*time.Millisecond, &b))
	runner.Start()

	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := runner.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}

	if a.Load() < 2 || b.Load() < 2 {
		t.Errorf("runs = %d/%d, want at least 2 each", a.Load(), b.Load())
	}
}

func TestStopCancelsJobContext(t *testing.T) {
	runner := tasks.New(zap.NewNop())

	cancelled := make(chan struct{})
	runner.Register(tasks.Job{
		Name:     "waiter",
		Interval: time.Hour,
		Run: func(ctx context.Context) error {
			<-ctx.Done()
			close(cancelled)
			return ctx.Err()
		},
	})
	runner.Start()
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := runner.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Error("job context was not cancelled")
	}
}

func TestStopTimesOutOnStuckJob(t *testing.T) {
	runner := tasks.New(zap.NewNop())

	started := make(chan struct{})
	runner.Register(tasks.Job{
		Name:     "stuck",
		Interval: time.Hour,
		Run: func(ctx context.Context) error {
			close(started)
			// Ignores ctx on purpose; Stop must give up.
			time.Sleep(5 * time.Second)
			return nil
		},
	})
	runner.Start()
	<-started
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := runner.Stop(ctx); err != context.DeadlineExceeded {
		t.Errorf("stop err = %v, want DeadlineExceeded", err)
	}
}

func TestRunOnce(t *testing.T) {
	runner := tasks.New(zap.NewNop())

	var runs atomic.Int32
	runner.Register(countingJob("manual", time.Hour, &runs))

	if err := runner.RunOnce(context.Background(), "manual"); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if runs.Load() != 1 {
		t.Errorf("runs = %d, want 1", runs.Load())
	}

	// Unknown names are a no-op.
	if err := runner.RunOnce(context.Background(), "nope"); err != nil {
		t.Errorf("unknown job err = %v", err)
	}
}
