package jwt

import (
	"errors"
	"net/http"
	"strings"
)

// TokenExtractorFunc extracts a raw token from an HTTP request.
// It returns ErrTokenNotFound when the request carries no token.
type TokenExtractorFunc func(r *http.Request) (string, error)

// BearerTokenExtractor reads "Authorization: Bearer <token>".
// The scheme is matched case-insensitively per RFC 6750.
func BearerTokenExtractor(r *http.Request) (string, error) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrTokenNotFound
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrTokenNotFound
	}
	return token, nil
}

// CookieTokenExtractor reads the token from the named cookie.
func CookieTokenExtractor(name string) TokenExtractorFunc {
	return func(r *http.Request) (string, error) {
		c, err := r.Cookie(name)
		if err != nil || c.Value == "" {
			return "", ErrTokenNotFound
		}
		return c.Value, nil
	}
}

// FirstOf tries extractors in order and returns the first token found.
// Errors other than ErrTokenNotFound stop the chain.
func FirstOf(extractors ...TokenExtractorFunc) TokenExtractorFunc {
	return func(r *http.Request) (string, error) {
		for _, extract := range extractors {
			token, err := extract(r)
			if err == nil {
				return token, nil
			}
			if !errors.Is(err, ErrTokenNotFound) {
				return "", err
			}
		}
		return "", ErrTokenNotFound
	}
}
