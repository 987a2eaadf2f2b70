package telemetry

import (
	"github.com/Borislavv/go-ttl-cache/internal/cache"
	"github.com/Borislavv/go-ttl-cache/internal/sweeper"
)

type sampler struct {
	cache   Stater
	sweeper sweeper.Sweeper
}

func newSampler(c Stater, sw sweeper.Sweeper) sampler {
	return sampler{cache: c, sweeper: sw}
}

// snapshot holds cumulative counters (monotonic).
type snapshot struct {
	hits         uint64
	misses       uint64
	writes       uint64
	sweeps       uint64
	sweptExpired uint64
	sweptOverHit uint64
	clears       uint64

	sweeperTicks  uint64
	sweeperSweeps uint64
	sweeperSwept  uint64
}

func (s sampler) snapshot() snapshot {
	st := s.cache.Stats()
	ticks, sweeps, swept := s.sweeper.SweeperMetrics()

	return fromStats(st, ticks, sweeps, swept)
}

func fromStats(st cache.Stats, ticks, sweeps, swept int64) snapshot {
	return snapshot{
		hits:         uint64(max(st.Hits, 0)),
		misses:       uint64(max(st.Misses, 0)),
		writes:       uint64(max(st.Writes, 0)),
		sweeps:       uint64(max(st.Sweeps, 0)),
		sweptExpired: uint64(max(st.SweptExpired, 0)),
		sweptOverHit: uint64(max(st.SweptOverHit, 0)),
		clears:       uint64(max(st.Clears, 0)),

		sweeperTicks:  uint64(max(ticks, 0)),
		sweeperSweeps: uint64(max(sweeps, 0)),
		sweeperSwept:  uint64(max(swept, 0)),
	}
}

// deltaSnapshot converts cumulative snapshots to per-interval deltas.
// If counters reset (cur < prev), it treats cur as the delta.
func deltaSnapshot(prev, cur snapshot) snapshot {
	return snapshot{
		hits:         delta(prev.hits, cur.hits),
		misses:       delta(prev.misses, cur.misses),
		writes:       delta(prev.writes, cur.writes),
		sweeps:       delta(prev.sweeps, cur.sweeps),
		sweptExpired: delta(prev.sweptExpired, cur.sweptExpired),
		sweptOverHit: delta(prev.sweptOverHit, cur.sweptOverHit),
		clears:       delta(prev.clears, cur.clears),

		sweeperTicks:  delta(prev.sweeperTicks, cur.sweeperTicks),
		sweeperSweeps: delta(prev.sweeperSweeps, cur.sweeperSweeps),
		sweeperSwept:  delta(prev.sweeperSwept, cur.sweeperSwept),
	}
}

func delta(prev, cur uint64) uint64 {
	if cur >= prev {
		return cur - prev
	}
	return cur
}
