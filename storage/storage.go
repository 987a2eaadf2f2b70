// Package storage defines the persistent backends a cache can dump to and restore from.
package storage

import (
	"context"
	"errors"
)

var ErrCorrupted = errors.New("storage: corrupted record")

// Record is the persisted form of one cache entry. Key is the storage key,
// i.e. the caller key after the cache key transform.
type Record[K comparable, V any] struct {
	Key       K     `msgpack:"k"`
	Value     V     `msgpack:"v"`
	CreatedAt int64 `msgpack:"c"`
	TTL       int64 `msgpack:"t"`
	Hits      int64 `msgpack:"h"`
	MaxHits   int64 `msgpack:"m"`
}

// Store persists full snapshots of a cache. Save replaces any previous snapshot.
// Load of a store that was never saved returns an empty slice and no error.
type Store[K comparable, V any] interface {
	Save(ctx context.Context, records []Record[K, V]) error
	Load(ctx context.Context) ([]Record[K, V], error)
	Close() error
}
