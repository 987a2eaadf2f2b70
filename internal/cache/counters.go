package cache

import "sync/atomic"

type counters struct {
	hits         atomic.Int64
	misses       atomic.Int64
	writes       atomic.Int64
	sweeps       atomic.Int64
	sweptExpired atomic.Int64
	sweptOverHit atomic.Int64
	clears       atomic.Int64
}

func newCounters() *counters {
	return &counters{}
}

// Stats holds cumulative (monotonic) counters.
type Stats struct {
	Hits         int64
	Misses       int64
	Writes       int64
	Sweeps       int64
	SweptExpired int64
	SweptOverHit int64
	Clears       int64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Hits:         c.hits.Load(),
		Misses:       c.misses.Load(),
		Writes:       c.writes.Load(),
		Sweeps:       c.sweeps.Load(),
		SweptExpired: c.sweptExpired.Load(),
		SweptOverHit: c.sweptOverHit.Load(),
		Clears:       c.clears.Load(),
	}
}
