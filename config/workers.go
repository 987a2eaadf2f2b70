package config

import "time"

type SweeperCfg struct {
	// Every is the pace of forced garbage collection checks.
	// Checks still respect GC.Interval, so Every below it only adds idle wakeups.
	Every time.Duration `yaml:"every"`
}

func (cfg *SweeperCfg) Enabled() bool {
	return cfg != nil
}

type TelemetryCfg struct {
	Interval time.Duration `yaml:"interval"`
}

func (cfg *TelemetryCfg) Enabled() bool {
	return cfg != nil
}
