package sweeper

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSweeperCounters_Snapshot verifies that sweeper counters correctly track metrics.
func TestSweeperCounters_Snapshot(t *testing.T) {
	c := newSweeperCounters()

	ticks, sweeps, swept := c.snapshot()
	require.Equal(t, int64(0), ticks)
	require.Equal(t, int64(0), sweeps)
	require.Equal(t, int64(0), swept)

	c.ticks.Add(10)
	c.sweeps.Add(4)
	c.swept.Add(25)

	ticks, sweeps, swept = c.snapshot()
	require.Equal(t, int64(10), ticks)
	require.Equal(t, int64(4), sweeps)
	require.Equal(t, int64(25), swept)
}

// TestSweeperCounters_Concurrent verifies thread-safety.
func TestSweeperCounters_Concurrent(t *testing.T) {
	c := newSweeperCounters()

	const numGoroutines = 10
	const opsPerGoroutine = 50

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < opsPerGoroutine; j++ {
				c.ticks.Add(1)
				c.sweeps.Add(1)
				c.swept.Add(1)
			}
		}()
	}
	wg.Wait()

	ticks, sweeps, swept := c.snapshot()
	require.Equal(t, int64(numGoroutines*opsPerGoroutine), ticks)
	require.Equal(t, int64(numGoroutines*opsPerGoroutine), sweeps)
	require.Equal(t, int64(numGoroutines*opsPerGoroutine), swept)
}
