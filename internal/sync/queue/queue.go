// Package queue implements the interval queue: an unbounded FIFO of
// intervals awaiting a scan, shared by the tip follower and the history
// filler's workers.
package queue

import (
	"context"
	"sync"

	"github.com/DoctorMozg/solana-block-monitor/internal/sync/interval"
)

// Queue is a FIFO of intervals, safe for many producers and many consumers.
// Pop blocks until an interval is available or ctx is cancelled.
type Queue struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items []interval.Interval
}

// New builds an empty Queue.
func New() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push enqueues iv. Never blocks.
func (q *Queue) Push(iv interval.Interval) {
	q.mu.Lock()
	q.items = append(q.items, iv)
	q.mu.Unlock()
	q.cond.Signal()
}

// Pop removes and returns the oldest interval, blocking until one is
// available or ctx is cancelled.
func (q *Queue) Pop(ctx context.Context) (interval.Interval, error) {
	// cond.Wait cannot observe ctx directly; a watcher goroutine wakes it on
	// cancellation so Pop still returns promptly at shutdown.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			// Holding the lock keeps the wakeup from landing between Pop's
			// ctx.Err check and its Wait.
			q.mu.Lock()
			q.cond.Broadcast()
			q.mu.Unlock()
		case <-done:
		}
	}()

	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 {
		if err := ctx.Err(); err != nil {
			return interval.Interval{}, err
		}
		q.cond.Wait()
	}

	iv := q.items[0]
	q.items = q.items[1:]
	return iv, nil
}

// Len returns the current number of queued intervals, for metrics.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
