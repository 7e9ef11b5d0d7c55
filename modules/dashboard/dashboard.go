// Package dashboard serves the per-customer text dashboard over the API and
// as a page.
package dashboard

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/intellicall/handler"
	"github.com/dmitrymomot/intellicall/modules/internal/apierr"
	"github.com/dmitrymomot/intellicall/pkg/binder"
	"github.com/dmitrymomot/intellicall/pkg/logger"
	"github.com/dmitrymomot/intellicall/pkg/validator"
	"github.com/dmitrymomot/intellicall/svc/auth"
	"github.com/dmitrymomot/intellicall/svc/customer"
	"github.com/dmitrymomot/intellicall/views"
)

const (
	DashboardURL = "/dashboard"
	LoginURL     = "/login"
)

type Module struct {
	customers *customer.Service
	session   *auth.Session
	apiGuard  *auth.Guard
	pageGuard *auth.Guard
	log       *slog.Logger

	apiErrors  handler.ErrorHandler[handler.Context]
	pageErrors handler.ErrorHandler[handler.Context]
}

func New(customers *customer.Service, session *auth.Session, apiGuard, pageGuard *auth.Guard, log *slog.Logger) *Module {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(logger.Component("dashboard"))

	return &Module{
		customers:  customers,
		session:    session,
		apiGuard:   apiGuard,
		pageGuard:  pageGuard,
		log:        log,
		apiErrors:  handler.NewJSONErrorHandler(log),
		pageErrors: views.ErrorHandler(log),
	}
}

// updateRequest keeps textContent untyped so a non-string value is reported
// as a validation error rather than a malformed body.
type updateRequest struct {
	TextContent any `json:"textContent"`
}

type customerRequest struct {
	CustomerID string `path:"customerId"`
}

// API serves the dashboard of the token's subject, and read access to any
// customer's dashboard. Mount it under /api/dashboard.
func (m *Module) API() http.Handler {
	r := chi.NewRouter()
	r.Use(m.apiGuard.Middleware)

	r.Get("/", handler.Wrap(m.get,
		handler.WithErrorHandler[handler.Context, struct{}](m.apiErrors),
	))
	r.Put("/", handler.Wrap(m.update,
		handler.WithBinders[handler.Context, updateRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, updateRequest](m.apiErrors),
	))
	r.Get("/{customerId}", handler.Wrap(m.getForCustomer,
		handler.WithBinders[handler.Context, customerRequest](binder.Path(nil)),
		handler.WithErrorHandler[handler.Context, customerRequest](m.apiErrors),
	))

	return r
}

// subject returns the verified claim's customer id. Routes are always behind
// a guard, so a missing claim is a wiring bug.
func subject(ctx handler.Context) (string, error) {
	claim, ok := auth.ClaimFromContext(ctx)
	if !ok {
		return "", handler.ErrUnauthorized.WithMessage(auth.MsgAccessTokenRequired)
	}
	return claim.SubjectID, nil
}

func (m *Module) get(ctx handler.Context, _ struct{}) handler.Response {
	id, err := subject(ctx)
	if err != nil {
		return handler.Error(err)
	}
	return m.dashboard(ctx, id)
}

func (m *Module) getForCustomer(ctx handler.Context, req customerRequest) handler.Response {
	return m.dashboard(ctx, req.CustomerID)
}

func (m *Module) dashboard(ctx handler.Context, id string) handler.Response {
	d, err := m.customers.Dashboard(ctx, id)
	if err != nil {
		return handler.Error(apierr.FromCustomer(err))
	}
	return handler.JSON(d)
}

func (m *Module) update(ctx handler.Context, req updateRequest) handler.Response {
	text, isString := req.TextContent.(string)
	if err := validator.Apply(validator.Rule{
		Check: func() bool { return isString },
		Error: validator.ValidationError{Field: "textContent", Message: customer.MsgTextContentInvalid},
	}); err != nil {
		return handler.Error(err)
	}

	id, err := subject(ctx)
	if err != nil {
		return handler.Error(err)
	}

	d, err := m.customers.UpdateDashboard(ctx, id, text)
	if err != nil {
		return handler.Error(apierr.FromCustomer(err))
	}
	return handler.JSON(d)
}

type saveForm struct {
	TextContent string `form:"textContent"`
}

// Pages registers GET and POST /dashboard behind the page guard.
func (m *Module) Pages(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(m.pageGuard.Middleware)
		r.Get(DashboardURL, handler.Wrap(m.page,
			handler.WithErrorHandler[handler.Context, struct{}](m.pageErrors),
		))
		r.Post(DashboardURL, handler.Wrap(m.save,
			handler.WithBinders[handler.Context, saveForm](binder.Form()),
			handler.WithErrorHandler[handler.Context, saveForm](m.pageErrors),
		))
	})
}

func (m *Module) page(ctx handler.Context, _ struct{}) handler.Response {
	id, err := subject(ctx)
	if err != nil {
		return handler.Error(err)
	}

	o, err := m.customers.Overview(ctx, id)
	if errors.Is(err, customer.ErrNotFound) {
		return m.forceLogout(ctx, id)
	}
	if err != nil {
		return handler.Error(err)
	}

	return handler.Templ(views.Dashboard(views.DashboardParams{
		Customer:  o.Profile,
		Dashboard: o.Dashboard,
	}))
}

// save redirects plain form posts back to the page and answers Datastar
// requests with a patch of the status fragment.
func (m *Module) save(ctx handler.Context, req saveForm) handler.Response {
	id, err := subject(ctx)
	if err != nil {
		return handler.Error(err)
	}

	d, err := m.customers.UpdateDashboard(ctx, id, req.TextContent)
	if errors.Is(err, customer.ErrNotFound) {
		return m.forceLogout(ctx, id)
	}
	if err != nil {
		return handler.Error(err)
	}

	if !handler.IsDataStar(ctx.Request()) {
		return handler.Redirect(DashboardURL)
	}
	return handler.Templ(views.DashboardStatus(views.DashboardParams{Dashboard: d, Saved: true}))
}

// forceLogout ends a session whose customer no longer exists.
func (m *Module) forceLogout(ctx handler.Context, id string) handler.Response {
	m.log.InfoContext(ctx, "session for deleted customer",
		logger.Event("forced_logout"),
		logger.CustomerID(id),
	)
	m.session.Clear(ctx.ResponseWriter())
	return handler.Redirect(LoginURL)
}
