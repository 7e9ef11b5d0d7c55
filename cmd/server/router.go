package main

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmitrymomot/intellicall/modules/account"
	"github.com/dmitrymomot/intellicall/modules/customers"
	"github.com/dmitrymomot/intellicall/modules/dashboard"
	"github.com/dmitrymomot/intellicall/modules/site"
	"github.com/dmitrymomot/intellicall/pkg/clientip"
	"github.com/dmitrymomot/intellicall/pkg/environment"
	"github.com/dmitrymomot/intellicall/pkg/httpserver"
	"github.com/dmitrymomot/intellicall/pkg/logger"
	"github.com/dmitrymomot/intellicall/pkg/requestid"
)

type routerDeps struct {
	env        environment.Environment
	log        *slog.Logger
	corsOrigin string
	readiness  []func(context.Context) error

	site      *site.Module
	account   *account.Module
	customers *customers.Module
	dashboard *dashboard.Module
}

// contentSecurityPolicy allows the Bootstrap and Datastar bundles from jsDelivr.
// Datastar evaluates its attribute expressions, hence unsafe-eval.
var contentSecurityPolicy = strings.Join([]string{
	"default-src 'self'",
	"style-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net",
	"script-src 'self' 'unsafe-inline' 'unsafe-eval' https://cdn.jsdelivr.net",
	"font-src 'self' https://cdn.jsdelivr.net",
	"connect-src 'self'",
	"frame-ancestors 'self'",
	"base-uri 'self'",
	"form-action 'self'",
}, "; ")

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		requestid.Middleware,
		environment.Middleware(d.env),
		clientip.Middleware,
		logger.Middleware(d.log),
		middleware.Recoverer,
		middleware.CleanPath,
		middleware.Compress(5),
		middleware.SetHeader("Content-Security-Policy", contentSecurityPolicy),
		middleware.SetHeader("X-Content-Type-Options", "nosniff"),
		middleware.SetHeader("X-Frame-Options", "SAMEORIGIN"),
		middleware.SetHeader("Referrer-Policy", "no-referrer"),
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{d.corsOrigin},
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Datastar-Request", requestid.Header},
			ExposedHeaders:   []string{requestid.Header, "Retry-After"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
	)

	r.Get("/livez", httpserver.HealthCheckHandler(d.log))
	r.Get("/readyz", httpserver.HealthCheckHandler(d.log, d.readiness...))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", d.site.Health())
		r.Mount("/auth", d.account.API())
		r.Mount("/customers", d.customers.API())
		r.Mount("/dashboard", d.dashboard.API())
		r.NotFound(d.site.APINotFound())
	})

	d.site.Pages(r)
	d.account.Pages(r)
	d.customers.Pages(r)
	d.dashboard.Pages(r)
	r.NotFound(d.site.NotFound())

	return r
}
