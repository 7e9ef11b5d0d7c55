package account

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/intellicall/handler"
	"github.com/dmitrymomot/intellicall/pkg/binder"
	"github.com/dmitrymomot/intellicall/pkg/logger"
	"github.com/dmitrymomot/intellicall/pkg/ratelimit"
	"github.com/dmitrymomot/intellicall/pkg/validator"
	"github.com/dmitrymomot/intellicall/svc/customer"
	"github.com/dmitrymomot/intellicall/views"
)

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

type loginAsCustomerForm struct {
	CustomerID string `form:"customerId"`
}

var pageLoginKey = ratelimit.KeyByIP("page-login")

// Pages registers /login, /logout and /login-as-customer on r.
func (m *Module) Pages(r chi.Router) {
	r.Get("/login", handler.Wrap(m.loginPage,
		handler.WithErrorHandler[handler.Context, struct{}](m.pageErrors),
	))
	r.Post("/login", handler.Wrap(m.login,
		handler.WithBinders[handler.Context, loginForm](binder.Form()),
		handler.WithErrorHandler[handler.Context, loginForm](m.pageErrors),
	))
	r.Post("/logout", handler.Wrap(m.logout,
		handler.WithErrorHandler[handler.Context, struct{}](m.pageErrors),
	))

	r.With(m.pageGuard.Middleware).Post("/login-as-customer", handler.Wrap(m.loginAsCustomer,
		handler.WithBinders[handler.Context, loginAsCustomerForm](binder.Form()),
		handler.WithErrorHandler[handler.Context, loginAsCustomerForm](m.pageErrors),
	))
}

// loginPage sends browsers that already hold a session cookie to the dashboard.
// The cookie is not verified here; the dashboard guard does that.
func (m *Module) loginPage(ctx handler.Context, _ struct{}) handler.Response {
	if _, ok := m.session.Token(ctx.Request()); ok {
		return handler.Redirect(DashboardURL)
	}
	return handler.Templ(views.Login(views.LoginParams{}))
}

func (m *Module) login(ctx handler.Context, req loginForm) handler.Response {
	form := func(msg string, opts ...handler.TemplOption) handler.Response {
		return handler.Templ(views.Login(views.LoginParams{Email: req.Email, Error: msg}), opts...)
	}

	if !m.allowLogin(ctx, ctx.Request()) {
		return form(MsgTooManyAttempts, handler.WithStatus(http.StatusTooManyRequests))
	}

	var password *string
	if req.Password != "" {
		password = &req.Password
	}

	profile, err := m.customers.Authenticate(ctx, req.Email, password)
	switch {
	case errors.Is(err, customer.ErrPasswordRequired):
		return form(customer.MsgPasswordRequired)
	case errors.Is(err, customer.ErrInvalidCredentials), validator.IsValidationError(err):
		return form(customer.MsgInvalidCredentials)
	case err != nil:
		m.log.ErrorContext(ctx, "login failed", logger.Error(err))
		return form(handler.MsgPageError)
	}

	token, err := m.issue(profile)
	if err != nil {
		m.log.ErrorContext(ctx, "failed to issue token", logger.Error(err))
		return form(handler.MsgPageError)
	}

	m.session.Set(ctx.ResponseWriter(), token)
	m.log.InfoContext(ctx, "customer logged in",
		logger.Event("page_login"),
		logger.CustomerID(profile.ID),
	)
	return handler.Redirect(DashboardURL)
}

// allowLogin fails open when the limiter store is unavailable.
func (m *Module) allowLogin(ctx handler.Context, r *http.Request) bool {
	if m.limiter == nil {
		return true
	}
	key := pageLoginKey(r)
	if key == "" {
		return true
	}

	res, err := m.limiter.Allow(ctx, key)
	if err != nil {
		m.log.WarnContext(ctx, "rate limiter unavailable", logger.Error(err))
		return true
	}
	return res.Allowed
}

func (m *Module) logout(ctx handler.Context, _ struct{}) handler.Response {
	m.session.Clear(ctx.ResponseWriter())
	return handler.Redirect(HomeURL)
}

func (m *Module) loginAsCustomer(ctx handler.Context, req loginAsCustomerForm) handler.Response {
	w := ctx.ResponseWriter()

	profile, err := m.customers.Get(ctx, req.CustomerID)
	if err != nil {
		msg := customer.MsgNotFound
		if !errors.Is(err, customer.ErrNotFound) {
			m.log.ErrorContext(ctx, "login as customer failed", logger.Error(err))
			msg = handler.MsgPageError
		}
		m.flash(ctx, w, msg)
		return handler.Redirect(AdminURL)
	}

	token, err := m.issue(profile)
	if err != nil {
		m.log.ErrorContext(ctx, "failed to issue token", logger.Error(err))
		m.flash(ctx, w, handler.MsgPageError)
		return handler.Redirect(AdminURL)
	}

	m.session.Set(w, token)
	m.log.InfoContext(ctx, "customer logged in",
		logger.Event("page_login_as_customer"),
		logger.CustomerID(profile.ID),
	)
	return handler.Redirect(DashboardURL)
}

func (m *Module) flash(ctx handler.Context, w http.ResponseWriter, msg string) {
	if err := m.cookies.SetFlash(w, views.FlashKey, views.Flash{Kind: views.FlashError, Message: msg}); err != nil {
		m.log.WarnContext(ctx, "failed to set flash", logger.Error(err))
	}
}
