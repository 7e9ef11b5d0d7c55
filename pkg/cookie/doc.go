// Package cookie manages HTTP cookies with shared defaults and encrypted
// one-shot flash values.
//
// A Manager is built once with one or more secrets (the first encrypts, all
// are tried on decrypt so secrets can be rotated) and default attributes.
// Per-call options override the defaults:
//
//	m, err := cookie.New([]string{secret}, cookie.WithSameSite(http.SameSiteStrictMode))
//	m.Set(w, "token", value, cookie.WithMaxAge(86400), cookie.WithSecure(true))
//	m.Delete(w, "token")
//
// Flash values are JSON encoded, sealed with AES-GCM and removed as soon as
// they are read.
package cookie
