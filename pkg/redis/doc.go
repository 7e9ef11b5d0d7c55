// Package redis opens a go-redis client with retries and exposes a health probe.
//
// Redis is optional for this service: when Config.ConnectionURL is empty,
// Enabled reports false and callers fall back to in-process stores.
package redis
