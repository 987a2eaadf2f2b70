// Package ttlcache is an in-memory cache with TTL expiry and hit-count based eviction.
//
// Entries carry a lifespan in seconds and an optional hit cap. Invalid entries
// (expired, or read more times than their cap) are purged by garbage collection
// sweeps. Sweeps are lazy: every Get/GetMultiple/GetAll/AddOrUpdate checks whether
// the minimum collection interval elapsed and sweeps at most once per window.
// GetMissingKeys and Clear never sweep. An optional background sweeper adds a
// time-driven trigger for caches that may stay idle.
//
// Quick start:
//
//	c, err := ttlcache.New[string, Offer](ctx, cfg, zerolog.Nop(),
//		ttlcache.WithKeyTransform[string, Offer](keys.Namespace(appID, userID)),
//	)
//	if err != nil { ... }
//	defer c.Close()
//
//	c.AddOrUpdate("placement", offer, time.Minute)
//	if v, ok := c.Get("placement"); ok { ... }
//
//	// fetch-and-populate for whatever is not cached yet
//	offers, err := c.GetOrFetch(ctx, placements, time.Minute, fetchOffers)
//
// Time is read from an injected clock.Source in whole epoch seconds; use
// clock.Manual in tests. All methods are safe for concurrent use: a single
// mutex guards each cache instance.
package ttlcache
