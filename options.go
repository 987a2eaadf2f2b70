package ttlcache

import (
	"github.com/Borislavv/go-ttl-cache/clock"
	"github.com/Borislavv/go-ttl-cache/keys"
	"github.com/Borislavv/go-ttl-cache/metrics"
	"github.com/Borislavv/go-ttl-cache/storage"
)

type options[K comparable, V any] struct {
	clock     clock.Source
	transform keys.Transform[K]
	metrics   metrics.Metrics
	store     storage.Store[K, V]
}

type Option[K comparable, V any] func(*options[K, V])

// WithClock injects the time source. Defaults to clock.System.
func WithClock[K comparable, V any](src clock.Source) Option[K, V] {
	return func(o *options[K, V]) { o.clock = src }
}

// WithKeyTransform derives storage keys from caller keys, e.g. keys.Namespace(appID, userID).
func WithKeyTransform[K comparable, V any](t keys.Transform[K]) Option[K, V] {
	return func(o *options[K, V]) { o.transform = t }
}

func WithMetrics[K comparable, V any](m metrics.Metrics) Option[K, V] {
	return func(o *options[K, V]) { o.metrics = m }
}

// WithStore sets the persistence backend, overriding cfg.Persistence.Backend.
// The cache takes ownership and closes it on Close.
func WithStore[K comparable, V any](s storage.Store[K, V]) Option[K, V] {
	return func(o *options[K, V]) { o.store = s }
}
