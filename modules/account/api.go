package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/intellicall/handler"
	"github.com/dmitrymomot/intellicall/modules/internal/apierr"
	"github.com/dmitrymomot/intellicall/pkg/binder"
	"github.com/dmitrymomot/intellicall/pkg/logger"
	"github.com/dmitrymomot/intellicall/pkg/ratelimit"
	"github.com/dmitrymomot/intellicall/pkg/validator"
	"github.com/dmitrymomot/intellicall/svc/customer"
)

type loginRequest struct {
	Email    string  `json:"email"`
	Password *string `json:"password"`
}

type loginAsCustomerRequest struct {
	CustomerID string `json:"customerId"`
}

// LoginResponse is returned by both API login endpoints.
type LoginResponse struct {
	Token    string           `json:"token"`
	Customer customer.Profile `json:"customer"`
}

// API serves /login and /login-as-customer. Mount it under /api/auth.
func (m *Module) API() http.Handler {
	r := chi.NewRouter()

	if m.limiter != nil {
		r.Use(ratelimit.Middleware(m.limiter, ratelimit.KeyByIP("api-login"),
			ratelimit.WithOnLimitReached(func(w http.ResponseWriter, r *http.Request, _ ratelimit.Result) {
				handler.WriteJSONError(w, r, http.StatusTooManyRequests, MsgTooManyRequests)
			}),
		))
	}

	r.Post("/login", handler.Wrap(m.apiLogin,
		handler.WithBinders[handler.Context, loginRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, loginRequest](m.apiErrors),
	))
	r.Post("/login-as-customer", handler.Wrap(m.apiLoginAsCustomer,
		handler.WithBinders[handler.Context, loginAsCustomerRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, loginAsCustomerRequest](m.apiErrors),
	))

	return r
}

func (m *Module) apiLogin(ctx handler.Context, req loginRequest) handler.Response {
	profile, err := m.customers.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return handler.Error(apierr.FromCustomer(err))
	}
	return m.loginResponse(ctx, profile, "login")
}

func (m *Module) apiLoginAsCustomer(ctx handler.Context, req loginAsCustomerRequest) handler.Response {
	if err := validator.Apply(
		validator.ValidUUID("customerId", req.CustomerID).WithMessage(customer.MsgCustomerIDInvalid),
	); err != nil {
		return handler.Error(err)
	}

	profile, err := m.customers.Get(ctx, req.CustomerID)
	if err != nil {
		return handler.Error(apierr.FromCustomer(err))
	}
	return m.loginResponse(ctx, profile, "login_as_customer")
}

func (m *Module) loginResponse(ctx handler.Context, profile customer.Profile, event string) handler.Response {
	token, err := m.issue(profile)
	if err != nil {
		return handler.Error(err)
	}

	m.log.InfoContext(ctx, "customer logged in",
		logger.Event(event),
		logger.CustomerID(profile.ID),
	)
	return handler.JSON(LoginResponse{Token: token, Customer: profile})
}
