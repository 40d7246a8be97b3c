// Package historyfiller owns the pool of workers that drain the interval
// queue, scan each interval via the application logic, and re-enqueue the
// gaps left uncovered by the upstream RPC response.
package historyfiller

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"

	"github.com/DoctorMozg/solana-block-monitor/internal/core/metrics"
	"github.com/DoctorMozg/solana-block-monitor/internal/rpc"
	"github.com/DoctorMozg/solana-block-monitor/internal/sync/interval"
	"github.com/DoctorMozg/solana-block-monitor/internal/sync/queue"
)

// App is the subset of app.Logic the history filler depends on.
type App interface {
	RangeConfirmed(ctx context.Context, start, end uint64) ([]uint64, error)
}

// Filler owns workersCount long-running workers, each repeatedly popping an
// interval, scanning it, and re-enqueueing any gap at or above
// minIntervalSize.
type Filler struct {
	app     App
	queue   *queue.Queue
	metrics *metrics.Sink

	workersCount    int
	minIntervalSize uint64
	retryDelay      time.Duration
}

// New builds a Filler. retryDelay is the fixed sleep a worker takes before
// requeueing an interval after a transient RPC failure.
func New(app App, q *queue.Queue, m *metrics.Sink, workersCount int, minIntervalSize uint64, retryDelay time.Duration) *Filler {
	return &Filler{
		app:             app,
		queue:           q,
		metrics:         m,
		workersCount:    workersCount,
		minIntervalSize: minIntervalSize,
		retryDelay:      retryDelay,
	}
}

// Run spawns the worker pool and blocks until ctx is cancelled, at which
// point every worker returns at its next suspension point.
func (f *Filler) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)

	for i := 0; i < f.workersCount; i++ {
		eg.Go(func() error {
			f.runWorker(ctx)
			return nil
		})
	}

	return eg.Wait()
}

func (f *Filler) runWorker(ctx context.Context) {
	for {
		iv, err := f.queue.Pop(ctx)
		if err != nil {
			// Context cancelled: this is the worker's suspension point for
			// shutdown, not an error worth logging.
			return
		}

		f.processInterval(ctx, iv)
	}
}

func (f *Filler) processInterval(ctx context.Context, iv interval.Interval) {
	confirmed, err := f.app.RangeConfirmed(ctx, iv.Start, iv.End)
	if err != nil {
		f.requeueAfterFailure(ctx, iv, err)
		return
	}

	for _, gap := range interval.Gaps(iv, confirmed) {
		if gap.Size() >= f.minIntervalSize {
			f.queue.Push(gap)
		}
	}

	f.metrics.QueueDepth.Set(float64(f.queue.Len()))
}

// requeueAfterFailure treats every RPC failure as transient, per spec:
// Dropped/terminal states are not implemented. A fixed backoff.ConstantBackOff
// delay is used instead of an immediate requeue to avoid hot-looping against
// a struggling upstream.
func (f *Filler) requeueAfterFailure(ctx context.Context, iv interval.Interval, err error) {
	slog.Warn("history filler: range scan failed, requeueing", "interval", iv.String(), "error", err, "transport_error", rpc.IsTransportError(err))

	b := backoff.NewConstantBackOff(f.retryDelay)
	timer := time.NewTimer(b.NextBackOff())
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return
	}

	f.queue.Push(iv)
}
