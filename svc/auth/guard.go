package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/intellicall/pkg/jwt"
	"github.com/dmitrymomot/intellicall/pkg/logger"
)

// Guard verifies the request token and attaches its claim to the context.
type Guard struct {
	svc       *Service
	extract   jwt.TokenExtractorFunc
	challenge Challenge
	now       func() time.Time
	log       *slog.Logger
}

type GuardOption func(*Guard)

// WithClock replaces time.Now for verification.
func WithClock(now func() time.Time) GuardOption {
	return func(g *Guard) {
		if now != nil {
			g.now = now
		}
	}
}

func WithLogger(log *slog.Logger) GuardOption {
	return func(g *Guard) {
		if log != nil {
			g.log = log
		}
	}
}

func NewGuard(svc *Service, extract jwt.TokenExtractorFunc, challenge Challenge, opts ...GuardOption) *Guard {
	g := &Guard{
		svc:       svc,
		extract:   extract,
		challenge: challenge,
		now:       time.Now,
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// APIGuard reads the bearer header first and the session cookie second.
func APIGuard(svc *Service, session *Session, opts ...GuardOption) *Guard {
	extract := jwt.FirstOf(jwt.BearerTokenExtractor, jwt.CookieTokenExtractor(session.CookieName()))
	return NewGuard(svc, extract, APIChallenge{}, opts...)
}

// PageGuard reads the session cookie only and redirects to /login.
func PageGuard(svc *Service, session *Session, opts ...GuardOption) *Guard {
	challenge := PageChallenge{Session: session, LoginURL: "/login"}
	return NewGuard(svc, jwt.CookieTokenExtractor(session.CookieName()), challenge, opts...)
}

func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := g.extract(r)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenNotFound) {
				g.challenge.OnMissing(w, r)
				return
			}
			g.challenge.OnInvalid(w, r, err)
			return
		}

		claim, err := g.svc.Verify(token, g.now())
		if err != nil {
			g.log.DebugContext(r.Context(), "token rejected",
				logger.Error(err),
				slog.String("reason", reason(err)),
				logger.Component("auth_guard"),
			)
			g.challenge.OnInvalid(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaim(r.Context(), claim)))
	})
}

func reason(err error) string {
	switch {
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrInvalidSignature):
		return "invalid_signature"
	default:
		return "malformed"
	}
}
