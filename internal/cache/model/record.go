package model

import "github.com/Borislavv/go-ttl-cache/storage"

// ToRecord exports the entry under its storage key.
func ToRecord[K comparable, V any](key K, e *Entry[V]) storage.Record[K, V] {
	return storage.Record[K, V]{
		Key:       key,
		Value:     e.value,
		CreatedAt: e.createdAt,
		TTL:       e.ttl,
		Hits:      e.hits,
		MaxHits:   e.maxHits,
	}
}

// FromRecord restores an entry including its hit count.
func FromRecord[K comparable, V any](r storage.Record[K, V]) *Entry[V] {
	hits := r.Hits
	if hits < 0 {
		hits = 0
	}
	return &Entry[V]{
		value:     r.Value,
		createdAt: r.CreatedAt,
		ttl:       r.TTL,
		hits:      hits,
		maxHits:   r.MaxHits,
	}
}
