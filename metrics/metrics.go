// Package metrics defines the observability hooks invoked by the cache.
package metrics

// EvictReason explains why an entry was removed.
type EvictReason int

const (
	// EvictExpired means removed by a sweep because its TTL elapsed.
	EvictExpired EvictReason = iota
	// EvictOverHit means removed by a sweep because it was read more than its hit cap allows.
	EvictOverHit
	// EvictClear means removed by an explicit Clear.
	EvictClear
)

func (r EvictReason) String() string {
	switch r {
	case EvictExpired:
		return "expired"
	case EvictOverHit:
		return "over_hit"
	case EvictClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Metrics is called under the cache lock; implementations must be cheap and must not call back into the cache.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason EvictReason, n int)
	Size(entries int)
	Sweep()
}

// Noop does nothing. It is the default when no backend is configured.
type Noop struct{}

func (Noop) Hit()                   {}
func (Noop) Miss()                  {}
func (Noop) Evict(EvictReason, int) {}
func (Noop) Size(int)               {}
func (Noop) Sweep()                 {}

var _ Metrics = Noop{}
