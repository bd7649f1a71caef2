// Package sched provides a cancellable periodic task. Callers get an explicit
// handle instead of a bare timer callback, and the ticker source is injected
// so tests never wait on the wall clock.
package sched

import (
	"context"
	"sync"
	"time"
)

// Ticker abstracts time.Ticker for test injection.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory builds the Ticker a task runs on. Nil means real time.
type TickerFactory func(interval time.Duration) Ticker

type realTicker struct{ ticker *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.ticker.C }
func (r realTicker) Stop()               { r.ticker.Stop() }

func RealTicker(interval time.Duration) Ticker {
	return realTicker{ticker: time.NewTicker(interval)}
}

// Task is a running periodic job. Stop is cooperative: it halts future runs
// but does not interrupt an execution already in flight.
type Task struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// Stop cancels the task and waits for the loop goroutine to exit. Safe to
// call more than once.
func (t *Task) Stop() {
	t.once.Do(func() { close(t.stop) })
	<-t.done
}

// Start runs fn every interval until the task is stopped or ctx is
// cancelled. fn runs on the task goroutine; a slow fn delays later ticks
// rather than overlapping them.
func Start(ctx context.Context, interval time.Duration, factory TickerFactory, fn func(context.Context)) *Task {
	if factory == nil {
		factory = RealTicker
	}

	task := &Task{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	ticker := factory(interval)

	go func() {
		defer close(task.done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-task.stop:
				return
			case <-ticker.C():
				fn(ctx)
			}
		}
	}()

	return task
}
