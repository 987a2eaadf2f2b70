package sweeper

import (
	"context"
	"errors"
	"time"

	"github.com/Borislavv/go-ttl-cache/config"
	"github.com/Borislavv/go-ttl-cache/internal/shared/rate"
	"github.com/rs/zerolog"
)

var ErrSweeperNotResponded = errors.New("sweeper not responded")

// Collector is the part of the cache the sweeper drives.
type Collector interface {
	Collect() (ran bool, swept int)
}

type Sweeper interface {
	ForceCall(timeout time.Duration) error
	SweeperMetrics() (ticks, sweeps, swept int64)
	Close() error
}

// SweepWorker triggers collection checks at a fixed pace so memory stays bounded
// while the cache is idle. Each check still honours the cache gc interval.
type SweepWorker struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.SweeperCfg
	cache    Collector
	logger   zerolog.Logger
	jitter   *rate.Jitter
	counters *sweeperCounters
	invokeCh chan struct{}
}

func New(
	ctx context.Context,
	cfg *config.SweeperCfg,
	logger zerolog.Logger,
	cache Collector,
) Sweeper {
	if !cfg.Enabled() {
		return &NoOpSweeper{}
	}

	ctx, cancel := context.WithCancel(ctx)
	return (&SweepWorker{
		ctx:      ctx,
		cancel:   cancel,
		cfg:      cfg,
		cache:    cache,
		logger:   logger,
		jitter:   rate.NewJitter(ctx, cfg.Every),
		counters: newSweeperCounters(),
		invokeCh: make(chan struct{}),
	}).run()
}

// ForceCall asks the worker for an out-of-schedule collection check.
func (w *SweepWorker) ForceCall(timeout time.Duration) error {
	after := time.NewTimer(timeout)
	defer after.Stop()

	select {
	case <-w.ctx.Done():
	case w.invokeCh <- struct{}{}:
	case <-after.C:
		return ErrSweeperNotResponded
	}
	return nil
}

func (w *SweepWorker) SweeperMetrics() (ticks, sweeps, swept int64) {
	return w.counters.snapshot()
}

func (w *SweepWorker) Close() error {
	w.cancel()
	return nil
}

func (w *SweepWorker) run() *SweepWorker {
	w.logger.Info().Str("every", w.cfg.Every.String()).Msg("sweeper is running")

	go func() {
		defer w.logger.Info().Msg("sweeper is stopped")
		for {
			select {
			case <-w.ctx.Done():
				return
			case _, ok := <-w.jitter.Chan():
				if !ok {
					return
				}
				w.collect()
			case <-w.invokeCh:
				w.collect()
			}
		}
	}()

	return w
}

func (w *SweepWorker) collect() {
	w.counters.ticks.Add(1)
	if ran, swept := w.cache.Collect(); ran {
		w.counters.sweeps.Add(1)
		w.counters.swept.Add(int64(swept))
	}
}
