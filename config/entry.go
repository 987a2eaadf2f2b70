package config

import "time"

type GCCfg struct {
	// Interval is the minimum spacing between two garbage collection sweeps,
	// independent of any entry TTL. Sub-second values are truncated to whole seconds.
	Interval time.Duration `yaml:"interval"`
}

// IntervalSeconds is the interval as used by the epoch-seconds clock.
func (cfg GCCfg) IntervalSeconds() int64 {
	return int64(cfg.Interval / time.Second)
}

type EntryCfg struct {
	// DefaultTTL applies to writes that pass a non-positive ttl.
	DefaultTTL time.Duration `yaml:"default_ttl"`

	// MaxHits is the default hit cap after which an entry is evicted by the next sweep.
	// Zero or negative means unlimited; unset is replaced by DefaultMaxHits.
	MaxHits *int64 `yaml:"max_hits"`
}

// HitCap is MaxHits with unset read as DefaultMaxHits.
func (cfg EntryCfg) HitCap() int64 {
	if cfg.MaxHits == nil {
		return DefaultMaxHits
	}
	return *cfg.MaxHits
}
