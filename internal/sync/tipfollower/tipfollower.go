// Package tipfollower implements the periodic task that watches the
// upstream tip and enqueues the newly confirmed range for the history
// filler's workers to scan.
package tipfollower

import (
	"context"
	"log/slog"
	"time"

	"github.com/DoctorMozg/solana-block-monitor/internal/core/metrics"
	"github.com/DoctorMozg/solana-block-monitor/internal/sync/interval"
	"github.com/DoctorMozg/solana-block-monitor/internal/sync/queue"
)

// App is the subset of app.Logic the tip follower depends on.
type App interface {
	CurrentTip(ctx context.Context) (uint64, error)
	PrimeTip(ctx context.Context) (uint64, error)
}

// Follower polls the upstream tip every interval and pushes the newly
// confirmed slot range, split into chunks, onto the work queue.
type Follower struct {
	app     App
	queue   *queue.Queue
	metrics *metrics.Sink

	interval              time.Duration
	monitoringDepth       uint64
	preferredIntervalSize uint64

	lastTip uint64
	primed  bool
}

// New builds a Follower. monitoringDepth bounds how far behind tip it is
// willing to enqueue on first observation or after a lag; preferredSize is
// the maximum chunk size pushed per enqueued interval.
func New(app App, q *queue.Queue, m *metrics.Sink, monitorInterval time.Duration, monitoringDepth, preferredSize uint64) *Follower {
	return &Follower{
		app:                   app,
		queue:                 q,
		metrics:               m,
		interval:              monitorInterval,
		monitoringDepth:       monitoringDepth,
		preferredIntervalSize: preferredSize,
	}
}

// PrimeTip seeds last_tip from the upstream's current tip without enqueuing
// anything. Called once at startup, before Run.
func (f *Follower) PrimeTip(ctx context.Context) error {
	tip, err := f.app.PrimeTip(ctx)
	if err != nil {
		return err
	}
	f.lastTip = subClamp(tip, f.monitoringDepth)
	f.primed = true
	f.metrics.CurrentTip.Set(float64(tip))
	return nil
}

// Run ticks every f.interval until ctx is cancelled, enqueuing newly
// confirmed ranges as the tip advances.
func (f *Follower) Run(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.tick(ctx)
		}
	}
}

func (f *Follower) tick(ctx context.Context) {
	tip, err := f.app.CurrentTip(ctx)
	if err != nil {
		slog.Warn("tip follower: current_tip failed", "error", err)
		return
	}

	if !f.primed {
		f.lastTip = subClamp(tip, f.monitoringDepth)
		f.primed = true
	}

	if tip > f.lastTip {
		start := max(f.lastTip+1, subClamp(tip, f.monitoringDepth))
		end := tip

		for _, chunk := range (interval.Interval{Start: start, End: end}).Split(f.preferredIntervalSize) {
			f.queue.Push(chunk)
		}

		f.lastTip = tip
	}
	// A tip that moves backwards is tolerated by doing nothing: last_tip
	// stays monotone non-decreasing and nothing is enqueued.

	f.metrics.CurrentTip.Set(float64(tip))
	f.metrics.QueueDepth.Set(float64(f.queue.Len()))
}

// subClamp returns max(0, tip-depth) without underflowing uint64.
func subClamp(tip, depth uint64) uint64 {
	if tip < depth {
		return 0
	}
	return tip - depth
}
