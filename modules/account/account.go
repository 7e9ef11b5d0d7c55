// Package account serves login, logout and "login as customer" for both the
// JSON API and the HTML pages.
package account

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/intellicall/handler"
	"github.com/dmitrymomot/intellicall/pkg/cookie"
	"github.com/dmitrymomot/intellicall/pkg/logger"
	"github.com/dmitrymomot/intellicall/pkg/ratelimit"
	"github.com/dmitrymomot/intellicall/svc/auth"
	"github.com/dmitrymomot/intellicall/svc/customer"
	"github.com/dmitrymomot/intellicall/views"
)

const (
	DashboardURL = "/dashboard"
	AdminURL     = "/admin"
	HomeURL      = "/"

	MsgTooManyRequests = "Too many requests"
	MsgTooManyAttempts = "Too many login attempts. Please try again later."
)

type Module struct {
	tokens    *auth.Service
	session   *auth.Session
	customers *customer.Service
	cookies   *cookie.Manager
	pageGuard *auth.Guard
	limiter   *ratelimit.Limiter
	log       *slog.Logger
	now       func() time.Time

	apiErrors  handler.ErrorHandler[handler.Context]
	pageErrors handler.ErrorHandler[handler.Context]
}

type Option func(*Module)

// WithLimiter enables per-IP rate limiting of every login endpoint.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(m *Module) { m.limiter = l }
}

func WithLogger(log *slog.Logger) Option {
	return func(m *Module) {
		if log != nil {
			m.log = log
		}
	}
}

// WithClock sets the time used when issuing tokens.
func WithClock(now func() time.Time) Option {
	return func(m *Module) {
		if now != nil {
			m.now = now
		}
	}
}

// New wires the account module. cookies carries the flash notice shown on
// the admin page when "login as customer" fails.
func New(
	tokens *auth.Service,
	session *auth.Session,
	customers *customer.Service,
	cookies *cookie.Manager,
	pageGuard *auth.Guard,
	opts ...Option,
) *Module {
	m := &Module{
		tokens:    tokens,
		session:   session,
		customers: customers,
		cookies:   cookies,
		pageGuard: pageGuard,
		log:       slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.log = m.log.With(logger.Component("account"))
	m.apiErrors = handler.NewJSONErrorHandler(m.log)
	m.pageErrors = views.ErrorHandler(m.log)
	return m
}

// issue signs a token for profile.
func (m *Module) issue(profile customer.Profile) (string, error) {
	return m.tokens.Issue(auth.Claim{SubjectID: profile.ID, Email: profile.Email}, m.now())
}
