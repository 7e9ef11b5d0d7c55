// Package ratelimit implements a token bucket rate limiter with pluggable
// storage.
//
// A bucket holds up to Capacity tokens and regains RefillRate tokens every
// RefillInterval. Each request takes one token; a request that finds too few
// tokens is denied and takes nothing.
//
//	store := ratelimit.NewMemoryStore()      // or ratelimit.NewRedisStore(client)
//	limiter, err := ratelimit.New(store, ratelimit.Config{
//		Capacity:       10,
//		RefillRate:     10,
//		RefillInterval: time.Minute,
//	})
//
//	r.With(ratelimit.Middleware(limiter, ratelimit.KeyByIP("login"))).Post("/login", ...)
//
// MemoryStore keeps buckets in process behind a mutex. RedisStore keeps them
// in redis and updates them atomically with a Lua script, so several
// instances share one limit.
package ratelimit
