// Package control wires the monitor's components together and owns their
// startup/shutdown sequencing.
package control

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/DoctorMozg/solana-block-monitor/internal/app"
	"github.com/DoctorMozg/solana-block-monitor/internal/core/cache"
	"github.com/DoctorMozg/solana-block-monitor/internal/core/config"
	"github.com/DoctorMozg/solana-block-monitor/internal/core/metrics"
	"github.com/DoctorMozg/solana-block-monitor/internal/rpc"
	"github.com/DoctorMozg/solana-block-monitor/internal/server"
	"github.com/DoctorMozg/solana-block-monitor/internal/sync/historyfiller"
	"github.com/DoctorMozg/solana-block-monitor/internal/sync/queue"
	"github.com/DoctorMozg/solana-block-monitor/internal/sync/tipfollower"
)

const (
	rpcTimeout          = 10 * time.Second
	historyRetryDelay   = 5 * time.Second
	shutdownGracePeriod = 10 * time.Second
)

// Monitor owns every long-running component of the service: the tip
// follower, the history filler's worker pool, and the HTTP listener.
type Monitor struct {
	httpServer *server.Server
	follower   *tipfollower.Follower
	filler     *historyfiller.Filler

	primed atomic.Bool
}

// New constructs a Monitor from cfg. It does not start any background work;
// call Run for that.
func New(cfg *config.Config) (*Monitor, error) {
	c, err := cache.New(cfg.CacheCapacity)
	if err != nil {
		return nil, err
	}

	client := rpc.New(cfg.SolanaRPCURL, rpcTimeout)
	m := metrics.NewSink(prometheus.DefaultRegisterer)
	logic := app.New(c, client, m)

	q := queue.New()

	mon := &Monitor{
		follower: tipfollower.New(
			logic, q, m,
			time.Duration(cfg.MonitorIntervalMS)*time.Millisecond,
			cfg.MonitoringDepth,
			cfg.PreferredIntervalSize,
		),
		filler: historyfiller.New(logic, q, m, cfg.WorkersCount, cfg.MinIntervalSize, historyRetryDelay),
	}

	mon.httpServer = server.New(cfg.Port, logic, mon.Ready)

	return mon, nil
}

// Ready reports whether startup priming has completed, backing the /health
// endpoint.
func (m *Monitor) Ready() bool {
	return m.primed.Load()
}

// Run primes the tip follower, spawns the synchronizer tasks and the HTTP
// listener, and blocks until ctx is cancelled or the listener fails.
func (m *Monitor) Run(ctx context.Context) error {
	if err := m.follower.PrimeTip(ctx); err != nil {
		return err
	}
	m.primed.Store(true)

	errc := make(chan error, 2)

	go func() {
		m.follower.Run(ctx)
	}()

	go func() {
		if err := m.filler.Run(ctx); err != nil {
			errc <- err
		}
	}()

	go func() {
		slog.Info("http server listening")
		errc <- m.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errc:
		return err
	}
}

// Shutdown drains the HTTP listener; the tip follower and workers stop at
// their next suspension point once the caller cancels the context passed
// to Run.
func (m *Monitor) Shutdown(ctx context.Context) error {
	return m.httpServer.Shutdown(ctx)
}
