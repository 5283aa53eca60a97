package service

import (
	"context"
	"sync"
)

// Scheduler starts background executions. Go must not block on fn.
type Scheduler interface {
	Go(fn func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(fn func())

func (f SchedulerFunc) Go(fn func()) {
	f(fn)
}

// GoroutineScheduler runs each execution on its own goroutine and forgets it.
type GoroutineScheduler struct{}

func (GoroutineScheduler) Go(fn func()) {
	go fn()
}

// TrackedScheduler runs executions on goroutines and can wait for them to drain.
type TrackedScheduler struct {
	wg sync.WaitGroup
}

func NewTrackedScheduler() *TrackedScheduler {
	return &TrackedScheduler{}
}

func (t *TrackedScheduler) Go(fn func()) {
	t.wg.Go(fn)
}

// Wait blocks until every started execution has returned or ctx is done.
// On ctx expiry the executions keep running; only the wait is abandoned.
func (t *TrackedScheduler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
