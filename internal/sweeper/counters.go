package sweeper

import "sync/atomic"

type sweeperCounters struct {
	ticks  atomic.Int64 // total wakeups
	sweeps atomic.Int64 // wakeups that actually ran a collection
	swept  atomic.Int64 // entries removed by those collections
}

func newSweeperCounters() *sweeperCounters {
	return &sweeperCounters{}
}

func (c *sweeperCounters) snapshot() (ticks, sweeps, swept int64) {
	ticks = c.ticks.Load()
	sweeps = c.sweeps.Load()
	swept = c.swept.Load()
	return
}
