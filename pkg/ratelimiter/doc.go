// Package ratelimiter implements token bucket rate limiting with pluggable
// storage.
//
// A Bucket holds the policy (capacity, refill rate and interval) and delegates
// state to a Store. MemoryStore keeps buckets in process and suits a single
// instance; RedisStore runs the algorithm atomically in a Lua script so several
// instances share one budget per key.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       5,
//		RefillRate:     1,
//		RefillInterval: time.Minute,
//	})
//
//	r.With(ratelimiter.Middleware(bucket, ratelimiter.ByIP)).Post("/api/contact", h)
//
// A request is allowed while Result.Remaining is not negative. Denied requests
// do not consume tokens.
package ratelimiter
