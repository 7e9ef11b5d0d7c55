package auth

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/intellicall/pkg/cookie"
)

// DefaultCookieName is the cookie holding the session token.
const DefaultCookieName = "token"

// Session writes and clears the token cookie.
type Session struct {
	cookies *cookie.Manager
	name    string
	secure  bool
	maxAge  time.Duration
}

type SessionOption func(*Session)

// WithSecureCookie marks the cookie Secure. Enable it in production.
func WithSecureCookie(secure bool) SessionOption {
	return func(s *Session) { s.secure = secure }
}

func WithCookieName(name string) SessionOption {
	return func(s *Session) {
		if name != "" {
			s.name = name
		}
	}
}

// WithCookieMaxAge sets the cookie lifetime, normally equal to the token TTL.
func WithCookieMaxAge(d time.Duration) SessionOption {
	return func(s *Session) {
		if d > 0 {
			s.maxAge = d
		}
	}
}

func NewSession(cookies *cookie.Manager, opts ...SessionOption) *Session {
	s := &Session{
		cookies: cookies,
		name:    DefaultCookieName,
		maxAge:  DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) CookieName() string { return s.name }

func (s *Session) options() []cookie.Option {
	return []cookie.Option{
		cookie.WithPath("/"),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteStrictMode),
		cookie.WithSecure(s.secure),
	}
}

// Set stores token in the session cookie.
func (s *Session) Set(w http.ResponseWriter, token string) {
	s.cookies.Set(w, s.name, token, append(s.options(), cookie.WithMaxAge(int(s.maxAge.Seconds())))...)
}

func (s *Session) Clear(w http.ResponseWriter) {
	s.cookies.Delete(w, s.name, s.options()...)
}

// Token returns the raw cookie value without verifying it.
func (s *Session) Token(r *http.Request) (string, bool) {
	v, err := s.cookies.Get(r, s.name)
	return v, err == nil && v != ""
}
