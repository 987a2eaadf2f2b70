package model

// Entry is owned exclusively by the cache and mutated only under its lock.
type Entry[V any] struct {
	value     V
	createdAt int64 // epoch seconds
	ttl       int64 // seconds from createdAt
	hits      int64 // successful lookups since creation
	maxHits   int64 // <= 0 means unlimited
}

func NewEntry[V any](value V, now, ttl, maxHits int64) *Entry[V] {
	return &Entry[V]{
		value:     value,
		createdAt: now,
		ttl:       ttl,
		maxHits:   maxHits,
	}
}

func (e *Entry[V]) Value() V         { return e.value }
func (e *Entry[V]) CreatedAt() int64 { return e.createdAt }
func (e *Entry[V]) TTL() int64       { return e.ttl }
func (e *Entry[V]) Hits() int64      { return e.hits }
func (e *Entry[V]) MaxHits() int64   { return e.maxHits }
func (e *Entry[V]) ExpiresAt() int64 { return e.createdAt + e.ttl }

// Hit counts a successful lookup and returns the value.
func (e *Entry[V]) Hit() V {
	e.hits++
	return e.value
}
