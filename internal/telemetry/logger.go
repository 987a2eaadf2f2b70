package telemetry

import (
	"context"
	"time"

	"github.com/Borislavv/go-ttl-cache/config"
	"github.com/Borislavv/go-ttl-cache/internal/cache"
	"github.com/Borislavv/go-ttl-cache/internal/sweeper"
	"github.com/rs/zerolog"
)

// Stater exposes the cache counters the reporter samples.
type Stater interface {
	Stats() cache.Stats
	Len() int
}

type Logger interface {
	Interval() time.Duration
	Close() error
}

type Logs struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.TelemetryCfg
	logger   zerolog.Logger
	cache    Stater
	sweeper  sweeper.Sweeper
	interval time.Duration
}

func New(
	ctx context.Context,
	cfg *config.TelemetryCfg,
	logger zerolog.Logger,
	cache Stater,
	sweeper sweeper.Sweeper,
) *Logs {
	ctx, cancel := context.WithCancel(ctx)
	l := &Logs{
		ctx:     ctx,
		cancel:  cancel,
		cfg:     cfg,
		logger:  logger,
		cache:   cache,
		sweeper: sweeper,
	}
	if cfg.Enabled() {
		l.interval = cfg.Interval
	}
	return l.run()
}

func (l *Logs) Interval() time.Duration {
	return l.interval
}

func (l *Logs) Close() error {
	l.cancel()
	return nil
}

func (l *Logs) run() *Logs {
	if l.cfg.Enabled() && l.interval > 0 {
		go l.loop()
	}
	return l
}

func (l *Logs) loop() {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	s := newSampler(l.cache, l.sweeper)
	prev := s.snapshot()

	for {
		select {
		case <-l.ctx.Done():
			return

		case <-ticker.C:
			cur := s.snapshot()
			d := deltaSnapshot(prev, cur)
			prev = cur
			l.report(d, l.cache.Len())
		}
	}
}

func (l *Logs) report(d snapshot, entries int) {
	interval := l.interval.String()

	l.logger.Info().
		Str("interval", interval).
		Uint64("hits", d.hits).
		Uint64("misses", d.misses).
		Uint64("writes", d.writes).
		Uint64("clears", d.clears).
		Int("entries", entries).
		Msg("storage")

	l.logger.Info().
		Str("interval", interval).
		Uint64("sweeps", d.sweeps).
		Uint64("expired", d.sweptExpired).
		Uint64("over_hit", d.sweptOverHit).
		Msg("garbage_collector")

	if d.sweeperTicks > 0 {
		l.logger.Info().
			Str("interval", interval).
			Uint64("ticks", d.sweeperTicks).
			Uint64("sweeps", d.sweeperSweeps).
			Uint64("swept", d.sweeperSwept).
			Msg("sweeper")
	}
}
