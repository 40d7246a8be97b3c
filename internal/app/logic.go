// Package app mediates between the confirmation cache, the upstream RPC
// client and the metrics sink. Every external caller — the HTTP handler and
// the synchronizer workers alike — goes through this layer so caching and
// metrics stay uniform regardless of who is asking.
package app

import (
	"context"
	"time"

	"github.com/DoctorMozg/solana-block-monitor/internal/core/cache"
	"github.com/DoctorMozg/solana-block-monitor/internal/core/metrics"
)

// Status is the outcome of a confirmation lookup.
type Status int

const (
	// Confirmed means the slot has a block.
	Confirmed Status = iota
	// NotConfirmed means a successful RPC lookup found no block for the slot.
	NotConfirmed
	// RpcFailure means the upstream RPC could not be reached or returned an
	// error; confirmation status is unknown.
	RpcFailure
)

// RPC is the subset of the upstream client Logic depends on.
type RPC interface {
	GetSlot(ctx context.Context) (uint64, error)
	GetBlocks(ctx context.Context, start, end uint64) ([]uint64, error)
}

// Logic implements the monitor's query path: is_confirmed, range_confirmed,
// current_tip and prime_tip, each routed uniformly through the cache, the
// RPC client and the metrics sink.
type Logic struct {
	cache   *cache.Cache
	rpc     RPC
	metrics *metrics.Sink
}

// New builds a Logic handle over the given cache, RPC client and metrics
// sink. The returned value is safe to share across any number of callers.
func New(c *cache.Cache, client RPC, m *metrics.Sink) *Logic {
	return &Logic{cache: c, rpc: client, metrics: m}
}

// IsConfirmed answers whether slot is confirmed, consulting the cache first
// and falling back to a single-slot RPC lookup on a miss.
func (l *Logic) IsConfirmed(ctx context.Context, slot uint64) (Status, error) {
	start := time.Now()
	defer func() {
		l.metrics.IsConfirmedLatencyMS.Observe(msSince(start))
	}()

	if l.cache.Contains(slot) {
		l.metrics.CacheHits.Inc()
		return Confirmed, nil
	}
	l.metrics.CacheMisses.Inc()

	slots, err := l.callGetBlocks(ctx, slot, slot)
	if err != nil {
		return RpcFailure, err
	}

	if len(slots) == 0 {
		return NotConfirmed, nil
	}

	l.cache.Insert(slot)
	return Confirmed, nil
}

// RangeConfirmed always calls RPC and inserts every returned slot into the
// cache. Used only by the synchronizer — the HTTP query path never calls
// this directly.
func (l *Logic) RangeConfirmed(ctx context.Context, start, end uint64) ([]uint64, error) {
	slots, err := l.callGetBlocks(ctx, start, end)
	if err != nil {
		return nil, err
	}

	l.cache.InsertMany(slots)
	l.metrics.CacheSize.Set(float64(l.cache.Len()))

	return slots, nil
}

// CurrentTip returns the latest slot the upstream endpoint reports.
func (l *Logic) CurrentTip(ctx context.Context) (uint64, error) {
	start := time.Now()
	l.metrics.RPCCallsTotal.Inc()

	tip, err := l.rpc.GetSlot(ctx)

	l.metrics.RPCCallLatencyMS.Observe(msSince(start))
	if err != nil {
		l.metrics.RPCFailuresTotal.Inc()
		return 0, err
	}
	return tip, nil
}

// PrimeTip is called once at startup to seed the tip follower's last-seen
// tip.
func (l *Logic) PrimeTip(ctx context.Context) (uint64, error) {
	return l.CurrentTip(ctx)
}

func (l *Logic) callGetBlocks(ctx context.Context, start, end uint64) ([]uint64, error) {
	callStart := time.Now()
	l.metrics.RPCCallsTotal.Inc()

	slots, err := l.rpc.GetBlocks(ctx, start, end)

	l.metrics.RPCCallLatencyMS.Observe(msSince(callStart))
	if err != nil {
		l.metrics.RPCFailuresTotal.Inc()
		return nil, err
	}
	return slots, nil
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
