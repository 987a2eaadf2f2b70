package clock

import (
	"context"
	"sync/atomic"
	"time"
)

const refreshEach = 10 * time.Millisecond

// Cached keeps the current second in an atomic refreshed by a ticker, so hot paths
// skip the time.Now syscall. After ctx is done it falls back to the wall clock.
type Cached struct {
	nowUnix atomic.Int64
	closed  atomic.Bool
}

func NewCached(ctx context.Context) *Cached {
	c := &Cached{}
	c.nowUnix.Store(time.Now().Unix())
	go c.run(ctx)
	return c
}

func (c *Cached) run(ctx context.Context) {
	ticker := time.NewTicker(refreshEach)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			c.closed.Store(true)
			return
		case tt := <-ticker.C:
			c.nowUnix.Store(tt.Unix())
		}
	}
}

func (c *Cached) EpochSeconds() int64 {
	if c.closed.Load() {
		return time.Now().Unix()
	}
	return c.nowUnix.Load()
}

var _ Source = (*Cached)(nil)
