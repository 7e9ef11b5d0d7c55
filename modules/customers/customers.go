// Package customers serves the customer API (list, get, register) and the
// admin page.
package customers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/intellicall/handler"
	"github.com/dmitrymomot/intellicall/modules/internal/apierr"
	"github.com/dmitrymomot/intellicall/pkg/binder"
	"github.com/dmitrymomot/intellicall/pkg/cookie"
	"github.com/dmitrymomot/intellicall/pkg/logger"
	"github.com/dmitrymomot/intellicall/pkg/validator"
	"github.com/dmitrymomot/intellicall/svc/auth"
	"github.com/dmitrymomot/intellicall/svc/customer"
	"github.com/dmitrymomot/intellicall/views"
)

const (
	AdminURL = "/admin"

	MsgCustomerAdded = "Customer added successfully!"
)

type Module struct {
	customers *customer.Service
	cookies   *cookie.Manager
	apiGuard  *auth.Guard
	pageGuard *auth.Guard
	log       *slog.Logger

	apiErrors  handler.ErrorHandler[handler.Context]
	pageErrors handler.ErrorHandler[handler.Context]
}

func New(customers *customer.Service, cookies *cookie.Manager, apiGuard, pageGuard *auth.Guard, log *slog.Logger) *Module {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(logger.Component("customers"))

	return &Module{
		customers:  customers,
		cookies:    cookies,
		apiGuard:   apiGuard,
		pageGuard:  pageGuard,
		log:        log,
		apiErrors:  handler.NewJSONErrorHandler(log),
		pageErrors: views.ErrorHandler(log),
	}
}

type getRequest struct {
	ID string `path:"id"`
}

type createRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password *string `json:"password"`
}

// API serves the customer collection. Mount it under /api/customers.
// Registration is open; reads require a token.
func (m *Module) API() http.Handler {
	r := chi.NewRouter()

	r.Post("/", handler.Wrap(m.create,
		handler.WithBinders[handler.Context, createRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, createRequest](m.apiErrors),
	))

	r.Group(func(r chi.Router) {
		r.Use(m.apiGuard.Middleware)
		r.Get("/", handler.Wrap(m.list,
			handler.WithErrorHandler[handler.Context, struct{}](m.apiErrors),
		))
		r.Get("/{id}", handler.Wrap(m.get,
			handler.WithBinders[handler.Context, getRequest](binder.Path(nil)),
			handler.WithErrorHandler[handler.Context, getRequest](m.apiErrors),
		))
	})

	return r
}

func (m *Module) list(ctx handler.Context, _ struct{}) handler.Response {
	profiles, err := m.customers.List(ctx)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(profiles)
}

func (m *Module) get(ctx handler.Context, req getRequest) handler.Response {
	profile, err := m.customers.Get(ctx, req.ID)
	if err != nil {
		return handler.Error(apierr.FromCustomer(err))
	}
	return handler.JSON(profile)
}

func (m *Module) create(ctx handler.Context, req createRequest) handler.Response {
	profile, err := m.customers.Register(ctx, customer.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return handler.Error(apierr.FromCustomer(err))
	}

	m.log.InfoContext(ctx, "customer registered",
		logger.Event("customer_registered"),
		logger.CustomerID(profile.ID),
	)
	return handler.JSON(profile, handler.WithJSONStatus(http.StatusCreated))
}

type addCustomerForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

// Pages registers the admin page and its add-customer form on r.
// Any valid session may use them.
func (m *Module) Pages(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(m.pageGuard.Middleware)
		r.Get(AdminURL, handler.Wrap(m.adminPage,
			handler.WithErrorHandler[handler.Context, struct{}](m.pageErrors),
		))
		r.Post(AdminURL+"/customers", handler.Wrap(m.addCustomer,
			handler.WithBinders[handler.Context, addCustomerForm](binder.Form()),
			handler.WithErrorHandler[handler.Context, addCustomerForm](m.pageErrors),
		))
	})
}

func (m *Module) adminPage(ctx handler.Context, _ struct{}) handler.Response {
	profiles, err := m.customers.List(ctx)
	if err != nil {
		return handler.Error(err)
	}

	params := views.AdminParams{Customers: profiles}
	var flash views.Flash
	if err := m.cookies.GetFlash(ctx.ResponseWriter(), ctx.Request(), views.FlashKey, &flash); err == nil {
		params.Flash = &flash
	}
	return handler.Templ(views.Admin(params))
}

func (m *Module) addCustomer(ctx handler.Context, req addCustomerForm) handler.Response {
	in := customer.RegisterInput{Name: req.Name, Email: req.Email}
	if req.Password != "" {
		in.Password = &req.Password
	}

	notice := views.Flash{Kind: views.FlashSuccess, Message: MsgCustomerAdded}
	profile, err := m.customers.Register(ctx, in)
	switch {
	case err == nil:
		m.log.InfoContext(ctx, "customer registered",
			logger.Event("customer_registered"),
			logger.CustomerID(profile.ID),
		)
	case validator.IsValidationError(err):
		notice = views.Flash{Kind: views.FlashError, Message: validator.ExtractValidationErrors(err).First()}
	case errors.Is(err, customer.ErrDuplicateEmail):
		notice = views.Flash{Kind: views.FlashError, Message: customer.MsgDuplicateEmail}
	default:
		return handler.Error(err)
	}

	if err := m.cookies.SetFlash(ctx.ResponseWriter(), views.FlashKey, notice); err != nil {
		m.log.WarnContext(ctx, "failed to set flash", logger.Error(err))
	}
	return handler.Redirect(AdminURL)
}
