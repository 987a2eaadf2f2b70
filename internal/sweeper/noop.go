package sweeper

import "time"

// NoOpSweeper is used when the time-driven trigger is disabled.
// Collection then happens only on cache access.
type NoOpSweeper struct{}

// ForceCall does nothing and returns nil.
func (NoOpSweeper) ForceCall(time.Duration) error { return nil }

// SweeperMetrics always returns zero values.
func (NoOpSweeper) SweeperMetrics() (ticks, sweeps, swept int64) {
	return 0, 0, 0
}

// Close does nothing and returns nil.
func (NoOpSweeper) Close() error {
	return nil
}
