// Package clock provides the epoch-seconds time sources consumed by the cache.
package clock

import (
	"sync/atomic"
	"time"
)

// Source supplies the current time in epoch seconds.
// Implementations must be safe for concurrent reads and non-decreasing in practice.
type Source interface {
	EpochSeconds() int64
}

// System is the wall clock.
type System struct{}

func (System) EpochSeconds() int64 { return time.Now().Unix() }

// Manual is a fully controllable source for tests. The zero value starts at epoch 0.
type Manual struct {
	now atomic.Int64
}

func NewManual(sec int64) *Manual {
	m := &Manual{}
	m.now.Store(sec)
	return m
}

func (m *Manual) EpochSeconds() int64 { return m.now.Load() }

func (m *Manual) Set(sec int64) { m.now.Store(sec) }

// Advance moves the clock forward by d truncated to whole seconds and returns the new value.
func (m *Manual) Advance(d time.Duration) int64 {
	return m.now.Add(int64(d / time.Second))
}

var (
	_ Source = System{}
	_ Source = (*Manual)(nil)
)
