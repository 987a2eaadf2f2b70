package cache

import (
	"sync"
	"time"

	"github.com/Borislavv/go-ttl-cache/clock"
	"github.com/Borislavv/go-ttl-cache/config"
	"github.com/Borislavv/go-ttl-cache/internal/cache/model"
	"github.com/Borislavv/go-ttl-cache/keys"
	"github.com/Borislavv/go-ttl-cache/metrics"
	"github.com/Borislavv/go-ttl-cache/storage"
	"github.com/rs/zerolog"
)

// Options carries the injected collaborators. Zero values are safe:
//   - nil Clock     => clock.System
//   - nil Transform => keys.Identity
//   - nil Metrics   => metrics.Noop
type Options[K comparable, V any] struct {
	Clock     clock.Source
	Transform keys.Transform[K]
	Metrics   metrics.Metrics
}

// Cache is a TTL and hit-count bounded map with lazy, access-driven garbage collection.
// A single mutex guards the mapping and the collection timestamp.
type Cache[K comparable, V any] struct {
	mu         sync.Mutex
	items      map[K]*model.Entry[V]
	nextGC     int64 // epoch second from which the next sweep may run; 0 => first access sweeps
	gcInterval int64
	defaultTTL int64
	maxHits    int64

	clock     clock.Source
	transform keys.Transform[K]
	metrics   metrics.Metrics
	logger    zerolog.Logger
	counters  *counters
}

func New[K comparable, V any](cfg *config.Cache, opts Options[K, V], logger zerolog.Logger) *Cache[K, V] {
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Transform == nil {
		opts.Transform = keys.Identity[K]
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.Noop{}
	}
	return &Cache[K, V]{
		items:      make(map[K]*model.Entry[V]),
		gcInterval: cfg.GC.IntervalSeconds(),
		defaultTTL: int64(cfg.Entry.DefaultTTL / time.Second),
		maxHits:    cfg.Entry.HitCap(),
		clock:      opts.Clock,
		transform:  opts.Transform,
		metrics:    opts.Metrics,
		logger:     logger,
		counters:   newCounters(),
	}
}

// AddOrUpdate stores a single value. A non-positive ttl means the configured default.
func (c *Cache[K, V]) AddOrUpdate(key K, value V, ttl time.Duration) {
	c.AddOrUpdateLimited(map[K]V{key: value}, ttl, c.maxHits)
}

// AddOrUpdateMultiple stores every pair with the configured hit cap.
func (c *Cache[K, V]) AddOrUpdateMultiple(entries map[K]V, ttl time.Duration) {
	c.AddOrUpdateLimited(entries, ttl, c.maxHits)
}

// AddOrUpdateLimited stores every pair with an explicit hit cap (<= 0 is unlimited).
// Existing entries are replaced, so their hits and creation time are reset.
func (c *Cache[K, V]) AddOrUpdateLimited(entries map[K]V, ttl time.Duration, maxHits int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.EpochSeconds()
	c.collectLocked(now)

	if len(entries) == 0 {
		return
	}

	ttlSec := c.ttlSeconds(ttl)
	for k, v := range entries {
		c.items[c.transform(k)] = model.NewEntry(v, now, ttlSec, maxHits)
	}
	c.counters.writes.Add(int64(len(entries)))
	c.metrics.Size(len(c.items))
}

// Get returns the value for key and counts a hit when present.
func (c *Cache[K, V]) Get(key K) (value V, found bool) {
	if values := c.GetMultiple([]K{key}); len(values) > 0 {
		return values[0], true
	}
	return value, false
}

// GetMultiple returns values of present keys in input order, skipping missing ones.
// Every returned value counts as a hit. A nil slice is treated as empty input.
func (c *Cache[K, V]) GetMultiple(keys []K) []V {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.collectLocked(c.clock.EpochSeconds())

	values := make([]V, 0, len(keys))
	for _, k := range keys {
		entry, ok := c.items[c.transform(k)]
		if !ok {
			c.counters.misses.Add(1)
			c.metrics.Miss()
			continue
		}
		values = append(values, entry.Hit())
		c.counters.hits.Add(1)
		c.metrics.Hit()
	}
	return values
}

// GetAll returns every value remaining after a collection check. Order is unspecified.
func (c *Cache[K, V]) GetAll() []V {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.collectLocked(c.clock.EpochSeconds())

	values := make([]V, 0, len(c.items))
	for _, entry := range c.items {
		values = append(values, entry.Value())
	}
	return values
}

// GetMissingKeys returns the keys that have no entry. It neither collects nor counts hits.
func (c *Cache[K, V]) GetMissingKeys(keys []K) []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	missing := make([]K, 0, len(keys))
	for _, k := range keys {
		if _, ok := c.items[c.transform(k)]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// Clear drops every entry regardless of its state.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.items)
	c.items = make(map[K]*model.Entry[V])
	c.counters.clears.Add(1)
	c.metrics.Evict(metrics.EvictClear, n)
	c.metrics.Size(0)
}

func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Collect runs a garbage collection check as if the cache was accessed.
// Used by the background sweeper.
func (c *Cache[K, V]) Collect() (ran bool, swept int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.collectLocked(c.clock.EpochSeconds())
}

// NextCollection returns the epoch second from which the next sweep may run.
func (c *Cache[K, V]) NextCollection() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nextGC
}

func (c *Cache[K, V]) Stats() Stats { return c.counters.snapshot() }

// Records exports every entry that is still valid, keyed by storage key.
func (c *Cache[K, V]) Records() []storage.Record[K, V] {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.EpochSeconds()
	records := make([]storage.Record[K, V], 0, len(c.items))
	for k, entry := range c.items {
		if entry.IsValid(now) {
			records = append(records, model.ToRecord(k, entry))
		}
	}
	return records
}

// Restore inserts records as-is (their keys are already transformed), skipping invalid ones.
// Returns the number of restored entries.
func (c *Cache[K, V]) Restore(records []storage.Record[K, V]) (restored int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.EpochSeconds()
	for _, r := range records {
		entry := model.FromRecord(r)
		if !entry.IsValid(now) {
			continue
		}
		c.items[r.Key] = entry
		restored++
	}
	c.metrics.Size(len(c.items))
	return restored
}

/**
 * Private API.
 */

func (c *Cache[K, V]) collectLocked(now int64) (ran bool, swept int) {
	if now < c.nextGC {
		return false, 0
	}
	c.nextGC = now + c.gcInterval

	var expired, overHit int
	for k, entry := range c.items {
		switch {
		case entry.IsExpired(now):
			expired++
		case entry.IsOverHit():
			overHit++
		default:
			continue
		}
		delete(c.items, k)
	}

	c.counters.sweeps.Add(1)
	c.counters.sweptExpired.Add(int64(expired))
	c.counters.sweptOverHit.Add(int64(overHit))
	c.metrics.Sweep()
	c.metrics.Evict(metrics.EvictExpired, expired)
	c.metrics.Evict(metrics.EvictOverHit, overHit)
	c.metrics.Size(len(c.items))

	if swept = expired + overHit; swept > 0 {
		c.logger.Debug().
			Int("expired", expired).
			Int("over_hit", overHit).
			Int("entries", len(c.items)).
			Int64("next_gc", c.nextGC).
			Msg("cache swept")
	}
	return true, swept
}

// ttlSeconds truncates to whole seconds, but keeps any positive ttl at least one second long.
func (c *Cache[K, V]) ttlSeconds(ttl time.Duration) int64 {
	if ttl <= 0 {
		return c.defaultTTL
	}
	if sec := int64(ttl / time.Second); sec > 0 {
		return sec
	}
	return 1
}
