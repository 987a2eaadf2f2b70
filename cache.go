package ttlcache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/Borislavv/go-ttl-cache/config"
	"github.com/Borislavv/go-ttl-cache/internal/cache"
	"github.com/Borislavv/go-ttl-cache/internal/sweeper"
	"github.com/Borislavv/go-ttl-cache/internal/telemetry"
	"github.com/Borislavv/go-ttl-cache/storage"
	"github.com/Borislavv/go-ttl-cache/storage/bolt"
	"github.com/Borislavv/go-ttl-cache/storage/file"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

var ErrPersistenceNotEnabled = errors.New("persistence mode is not enabled")

type TTLCache[K comparable, V any] interface {
	AddOrUpdate(key K, value V, ttl time.Duration)
	AddOrUpdateMultiple(entries map[K]V, ttl time.Duration)
	AddOrUpdateLimited(entries map[K]V, ttl time.Duration, maxHits int64)
	Get(key K) (V, bool)
	GetMultiple(keys []K) []V
	GetAll() []V
	GetMissingKeys(keys []K) []K
	GetOrFetch(ctx context.Context, keys []K, ttl time.Duration, fetch FetchFunc[K, V]) ([]V, error)
	Clear()
	Len() int
	Collect(timeout time.Duration) error
	Stats() Stats
	Save(ctx context.Context) error
	Load(ctx context.Context) (int, error)
	io.Closer
}

// Stats combines the cache and sweeper counters. All values are cumulative.
type Stats struct {
	cache.Stats
	SweeperTicks  int64
	SweeperSweeps int64
	SweeperSwept  int64
}

type Cache[K comparable, V any] struct {
	cfg       *config.Cache
	core      *cache.Cache[K, V]
	sweeper   sweeper.Sweeper
	telemetry telemetry.Logger
	store     storage.Store[K, V]
	logger    zerolog.Logger
	flights   singleflight.Group
	cls       context.CancelFunc
	closeOnce sync.Once
	closeErr  error
}

// New builds the cache and starts the workers enabled in cfg. A nil cfg means config.Default().
func New[K comparable, V any](ctx context.Context, cfg *config.Cache, logger zerolog.Logger, opts ...Option[K, V]) (*Cache[K, V], error) {
	if cfg == nil {
		cfg = config.Default()
	} else {
		cfg.AdjustConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &options[K, V]{}
	for _, opt := range opts {
		opt(o)
	}

	store, err := openStore[K, V](cfg.Persistence, o.store, logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	core := cache.New[K, V](cfg, cache.Options[K, V]{
		Clock:     o.clock,
		Transform: o.transform,
		Metrics:   o.metrics,
	}, logger)

	c := &Cache[K, V]{cfg: cfg, core: core, store: store, logger: logger, cls: cancel}

	if store != nil && cfg.Persistence.Enabled() && cfg.Persistence.LoadOnStart {
		if _, err = c.Load(ctx); err != nil {
			cancel()
			_ = store.Close()
			return nil, fmt.Errorf("load on start: %w", err)
		}
	}

	c.sweeper = sweeper.New(ctx, cfg.Sweeper, logger, core)
	c.telemetry = telemetry.New(ctx, cfg.Telemetry, logger, core, c.sweeper)

	logger.Info().
		Dur("gc_interval", cfg.GC.Interval).
		Dur("default_ttl", cfg.Entry.DefaultTTL).
		Int64("max_hits", cfg.Entry.HitCap()).
		Dur("telemetry_interval", c.telemetry.Interval()).
		Msg("cache is running")
	return c, nil
}

func (c *Cache[K, V]) AddOrUpdate(key K, value V, ttl time.Duration) {
	c.core.AddOrUpdate(key, value, ttl)
}

func (c *Cache[K, V]) AddOrUpdateMultiple(entries map[K]V, ttl time.Duration) {
	c.core.AddOrUpdateMultiple(entries, ttl)
}

func (c *Cache[K, V]) AddOrUpdateLimited(entries map[K]V, ttl time.Duration, maxHits int64) {
	c.core.AddOrUpdateLimited(entries, ttl, maxHits)
}

func (c *Cache[K, V]) Get(key K) (V, bool)         { return c.core.Get(key) }
func (c *Cache[K, V]) GetMultiple(keys []K) []V    { return c.core.GetMultiple(keys) }
func (c *Cache[K, V]) GetAll() []V                 { return c.core.GetAll() }
func (c *Cache[K, V]) GetMissingKeys(keys []K) []K { return c.core.GetMissingKeys(keys) }
func (c *Cache[K, V]) Clear()                      { c.core.Clear() }
func (c *Cache[K, V]) Len() int                    { return c.core.Len() }

// Collect asks for an out-of-schedule collection check, which still honours the gc interval.
// The check runs on the sweeper when it is enabled and inline otherwise.
func (c *Cache[K, V]) Collect(timeout time.Duration) error {
	if _, ok := c.sweeper.(*sweeper.NoOpSweeper); ok {
		c.core.Collect()
		return nil
	}
	return c.sweeper.ForceCall(timeout)
}

func (c *Cache[K, V]) Stats() Stats {
	ticks, sweeps, swept := c.sweeper.SweeperMetrics()
	return Stats{Stats: c.core.Stats(), SweeperTicks: ticks, SweeperSweeps: sweeps, SweeperSwept: swept}
}

// Save dumps every valid entry to the configured store.
func (c *Cache[K, V]) Save(ctx context.Context) error {
	if c.store == nil {
		return ErrPersistenceNotEnabled
	}
	if err := c.store.Save(ctx, c.core.Records()); err != nil {
		return fmt.Errorf("save cache: %w", err)
	}
	return nil
}

// Load restores the last snapshot and returns the number of entries that were still valid.
func (c *Cache[K, V]) Load(ctx context.Context) (int, error) {
	if c.store == nil {
		return 0, ErrPersistenceNotEnabled
	}
	records, err := c.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load cache: %w", err)
	}
	restored := c.core.Restore(records)
	c.logger.Info().
		Int("records", len(records)).
		Int("restored", restored).
		Msg("cache restored")
	return restored, nil
}

// Close stops background workers, dumps on close when configured and closes the store.
func (c *Cache[K, V]) Close() error {
	c.closeOnce.Do(func() {
		c.cls()
		_ = c.sweeper.Close()
		_ = c.telemetry.Close()

		if c.store == nil {
			return
		}
		var errs []error
		if c.cfg.Persistence.Enabled() && c.cfg.Persistence.DumpOnClose {
			if err := c.Save(context.Background()); err != nil {
				errs = append(errs, fmt.Errorf("dump on close: %w", err))
			}
		}
		if err := c.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
		c.closeErr = errors.Join(errs...)
	})
	return c.closeErr
}

func openStore[K comparable, V any](cfg *config.PersistenceCfg, explicit storage.Store[K, V], logger zerolog.Logger) (storage.Store[K, V], error) {
	if explicit != nil {
		return explicit, nil
	}
	if !cfg.Enabled() {
		return nil, nil
	}
	switch cfg.Backend {
	case config.BackendBolt:
		return bolt.New[K, V](bolt.Options{
			Path:   filepath.Join(cfg.Dir, cfg.Name+".db"),
			Bucket: cfg.Name,
		}, logger)
	default:
		return file.New[K, V](file.Options{
			Dir:          cfg.Dir,
			Name:         cfg.Name,
			Gzip:         cfg.Gzip,
			Crc32Control: cfg.Crc32Control,
		}, logger)
	}
}

var _ TTLCache[string, int] = (*Cache[string, int])(nil)
