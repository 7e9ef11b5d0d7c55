package ratelimit

import (
	"net/http"

	"github.com/dmitrymomot/intellicall/pkg/clientip"
)

// KeyFunc extracts the bucket key from a request. An empty key skips limiting.
type KeyFunc func(*http.Request) string

// KeyByIP keys buckets by client IP, namespaced by scope so separate
// endpoint groups do not share a bucket.
func KeyByIP(scope string) KeyFunc {
	return func(r *http.Request) string {
		ip := clientip.GetIP(r)
		if ip == "" {
			return ""
		}
		return scope + ":" + ip
	}
}
