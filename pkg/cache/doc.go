// Package cache provides a Redis-backed page cache for list transports.
//
// Manager stores pages as JSON with a TTL. Transport decorates any
// transport.Transport: a page already cached under the same endpoint, params
// and account is served from Redis, otherwise it is fetched and stored.
// Identical concurrent misses share one fetch.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	manager := cache.NewManager(redisClient, "chainable")
//	cached := cache.NewTransport(tr, manager, cache.Config{
//		TTL:    5 * time.Minute,
//		Logger: logging.NewLogger("cache"),
//	})
//
//	q, err := chain.New(cached, chain.DefaultConfig())
//
// Cache failures are logged and never fail a fetch. Transport errors are not
// cached.
//
// # Metrics
//
//   - chainable_cache_hits_total - Cache hits
//   - chainable_cache_misses_total - Cache misses
//   - chainable_cache_errors_total{operation} - Cache operation errors
package cache
