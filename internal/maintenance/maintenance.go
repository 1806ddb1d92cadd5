// Package maintenance runs periodic background tasks as Go tickers.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/vpsports/scorekeeper/internal/metrics"
)

// Pinger reports storage reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config controls task intervals. Zero duration disables a task.
type Config struct {
	ProbeInterval time.Duration // Storage reachability probe
	ProbeTimeout  time.Duration
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		ProbeInterval: 30 * time.Second,
		ProbeTimeout:  5 * time.Second,
	}
}

// Start launches all configured tickers. Blocks until ctx is cancelled.
// Intended to be called with `go`.
func Start(ctx context.Context, storage Pinger, rec *metrics.Recorder, cfg Config, logger *slog.Logger) {
	if cfg.ProbeInterval <= 0 {
		logger.Info("Maintenance tickers disabled")
		return
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = cfg.ProbeInterval
	}
	logger.Info("Maintenance tickers started", "probe", cfg.ProbeInterval)

	t := time.NewTicker(cfg.ProbeInterval)
	defer t.Stop()

	p := &prober{storage: storage, rec: rec, timeout: cfg.ProbeTimeout, logger: logger, up: true}
	p.run(ctx)
	runLoop(ctx, t.C, func() { p.run(ctx) })

	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

// prober logs reachability changes only, so a long outage yields two lines.
type prober struct {
	storage Pinger
	rec     *metrics.Recorder
	timeout time.Duration
	logger  *slog.Logger
	up      bool
}

func (p *prober) run(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err := p.storage.Ping(probeCtx)
	if ctx.Err() != nil {
		return
	}
	up := err == nil
	p.rec.SetStorageUp(up)

	switch {
	case !up && p.up:
		p.logger.Warn("Storage probe failed", "error", err)
	case up && !p.up:
		p.logger.Info("Storage probe recovered")
	}
	p.up = up
}
