package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultGCInterval = time.Second
	DefaultTTL        = 60 * time.Second
	DefaultMaxHits    = 100
)

var ErrInvalid = errors.New("invalid cache config")

// Cache groups configuration of the cache and its optional workers.
// Optional sections are disabled by leaving them nil.
type Cache struct {
	GC    GCCfg    `yaml:"gc"`
	Entry EntryCfg `yaml:"entry"`

	// Sweeper enables a time-driven garbage collection trigger.
	// If nil, collection runs only when the cache is accessed.
	Sweeper *SweeperCfg `yaml:"sweeper"`

	// Telemetry enables periodic counter reports in logs.
	Telemetry *TelemetryCfg `yaml:"telemetry"`

	// Persistence configures the dump backend used by Save/Load.
	// If nil, persistence is disabled unless a store is passed explicitly.
	Persistence *PersistenceCfg `yaml:"persistence"`
}

// AdjustConfig fills zero values with defaults.
func (cfg *Cache) AdjustConfig() {
	if cfg.GC.Interval == 0 {
		cfg.GC.Interval = DefaultGCInterval
	}
	if cfg.Entry.DefaultTTL == 0 {
		cfg.Entry.DefaultTTL = DefaultTTL
	}
	if cfg.Entry.MaxHits == nil {
		maxHits := int64(DefaultMaxHits)
		cfg.Entry.MaxHits = &maxHits
	}
	if cfg.Persistence.Enabled() {
		if cfg.Persistence.Backend == "" {
			cfg.Persistence.Backend = BackendFile
		}
		if cfg.Persistence.Name == "" {
			cfg.Persistence.Name = "cache"
		}
	}
}

func (cfg *Cache) Validate() error {
	if cfg.GC.Interval < 0 {
		return fmt.Errorf("%w: negative gc interval %s", ErrInvalid, cfg.GC.Interval)
	}
	if cfg.Entry.DefaultTTL < 0 {
		return fmt.Errorf("%w: negative default ttl %s", ErrInvalid, cfg.Entry.DefaultTTL)
	}
	if cfg.Sweeper.Enabled() && cfg.Sweeper.Every <= 0 {
		return fmt.Errorf("%w: sweeper.every must be positive", ErrInvalid)
	}
	if cfg.Telemetry.Enabled() && cfg.Telemetry.Interval <= 0 {
		return fmt.Errorf("%w: telemetry.interval must be positive", ErrInvalid)
	}
	if cfg.Persistence.Enabled() {
		switch cfg.Persistence.Backend {
		case BackendFile, BackendBolt:
		default:
			return fmt.Errorf("%w: unknown persistence backend %q", ErrInvalid, cfg.Persistence.Backend)
		}
		if cfg.Persistence.Dir == "" {
			return fmt.Errorf("%w: persistence.dir is required", ErrInvalid)
		}
	}
	return nil
}

func LoadConfig(path string) (*Cache, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config yaml file %s: %w", path, err)
	}

	cfg := &Cache{}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml from %s: %w", path, err)
	}
	cfg.AdjustConfig()

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns an adjusted config with every optional section disabled.
func Default() *Cache {
	cfg := &Cache{}
	cfg.AdjustConfig()
	return cfg
}
