package model

// IsExpired - checks that the entry outlived its ttl at now.
func (e *Entry[V]) IsExpired(now int64) bool {
	return e.ExpiresAt() < now
}

// IsOverHit - checks that the entry was read more times than its cap allows.
func (e *Entry[V]) IsOverHit() bool {
	return e.maxHits > 0 && e.hits > e.maxHits
}

// IsValid reports whether the entry survives a sweep at now.
func (e *Entry[V]) IsValid(now int64) bool {
	return !e.IsExpired(now) && !e.IsOverHit()
}
