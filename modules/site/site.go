// Package site serves the public pages, the API health message and the
// not found fallbacks.
package site

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/intellicall/handler"
	"github.com/dmitrymomot/intellicall/pkg/logger"
	"github.com/dmitrymomot/intellicall/svc/auth"
	"github.com/dmitrymomot/intellicall/views"
)

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

const HealthMessage = "IntelliCall API is running"

type Module struct {
	session *auth.Session

	apiErrors  handler.ErrorHandler[handler.Context]
	pageErrors handler.ErrorHandler[handler.Context]
}

func New(session *auth.Session, log *slog.Logger) *Module {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(logger.Component("site"))

	return &Module{
		session:    session,
		apiErrors:  handler.NewJSONErrorHandler(log),
		pageErrors: views.ErrorHandler(log),
	}
}

// Pages registers / and /privacy on r.
func (m *Module) Pages(r chi.Router) {
	r.Get("/", handler.Wrap(m.landing,
		handler.WithErrorHandler[handler.Context, struct{}](m.pageErrors),
	))
	r.Get("/privacy", handler.Wrap(m.privacy,
		handler.WithErrorHandler[handler.Context, struct{}](m.pageErrors),
	))
}

// hasSession only checks that a cookie is present; it drives navigation
// links, not access.
func (m *Module) hasSession(r *http.Request) bool {
	_, ok := m.session.Token(r)
	return ok
}

func (m *Module) landing(ctx handler.Context, _ struct{}) handler.Response {
	return handler.Templ(views.Landing(m.hasSession(ctx.Request())))
}

func (m *Module) privacy(ctx handler.Context, _ struct{}) handler.Response {
	return handler.Templ(views.Privacy(m.hasSession(ctx.Request())))
}

// Health answers GET /api/health. Infrastructure probes live on /livez and /readyz.
func (m *Module) Health() http.HandlerFunc {
	return handler.Wrap(func(handler.Context, struct{}) handler.Response {
		return handler.JSON(HealthResponse{Status: "OK", Message: HealthMessage})
	}, handler.WithErrorHandler[handler.Context, struct{}](m.apiErrors))
}

// APINotFound answers unknown /api paths with a JSON 404.
func (m *Module) APINotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handler.WriteJSONError(w, r, http.StatusNotFound, handler.ErrNotFound.Error())
	}
}

// NotFound renders the HTML 404 page.
func (m *Module) NotFound() http.HandlerFunc {
	return handler.Wrap(func(handler.Context, struct{}) handler.Response {
		return handler.Templ(views.NotFound(), handler.WithStatus(http.StatusNotFound))
	}, handler.WithErrorHandler[handler.Context, struct{}](m.pageErrors))
}
