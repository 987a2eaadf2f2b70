package ttlcache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FetchFunc loads values for keys the cache does not hold. Keys absent from the
// returned map are treated as unknown to the backend and are not cached.
type FetchFunc[K comparable, V any] func(ctx context.Context, missing []K) (map[K]V, error)

// GetOrFetch returns values for keys in input order, fetching and caching the missing ones first.
//
// Concurrent calls missing the same key set share a single fetch. The set is identified by
// the fmt rendering of each key, so distinct keys that render identically share a flight too;
// results are still read back by key afterwards. A shared fetch runs with the ctx of the call
// that started it: if that ctx is cancelled, every caller waiting on the flight gets the error.
func (c *Cache[K, V]) GetOrFetch(ctx context.Context, keys []K, ttl time.Duration, fetch FetchFunc[K, V]) ([]V, error) {
	if missing := c.core.GetMissingKeys(keys); len(missing) > 0 {
		_, err, _ := c.flights.Do(flightKey(missing), func() (any, error) {
			fetched, err := fetch(ctx, missing)
			if err != nil {
				return nil, err
			}
			c.core.AddOrUpdateMultiple(fetched, ttl)
			return nil, nil
		})
		if err != nil {
			return nil, fmt.Errorf("fetch %d missing keys: %w", len(missing), err)
		}
	}
	return c.core.GetMultiple(keys), nil
}

// flightKey renders keys length-prefixed, so a separator inside a key cannot merge two sets.
func flightKey[K comparable](keys []K) string {
	var sb strings.Builder
	for _, k := range keys {
		rendered := fmt.Sprint(k)
		sb.WriteString(strconv.Itoa(len(rendered)))
		sb.WriteByte(':')
		sb.WriteString(rendered)
	}
	return sb.String()
}
