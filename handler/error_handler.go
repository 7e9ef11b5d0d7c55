package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/intellicall/pkg/binder"
	"github.com/dmitrymomot/intellicall/pkg/logger"
	"github.com/dmitrymomot/intellicall/pkg/requestid"
	"github.com/dmitrymomot/intellicall/pkg/validator"
)

const (
	MsgInternalError      = "Internal server error"
	MsgInvalidRequestBody = "Invalid request body"
	MsgPageError          = "An error occurred. Please try again."
)

// ErrorPageParams is the data passed to the HTML error page.
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
}

// ErrorToastParams is the data passed to the Datastar error toast.
type ErrorToastParams struct {
	Message   string
	RequestID string
}

type ErrorHandlerConfig struct {
	ErrorPage  func(ErrorPageParams) templ.Component
	ErrorToast func(ErrorToastParams) templ.Component
	// ToastTarget defaults to "#toast-container".
	ToastTarget string
}

// errorInfo is the client facing view of an error.
type errorInfo struct {
	status     int
	message    string
	validation validator.ValidationErrors
}

func classifyError(err error, fallback string) errorInfo {
	if ve := validator.ExtractValidationErrors(err); ve != nil {
		return errorInfo{status: http.StatusBadRequest, message: ve.First(), validation: ve}
	}

	if binder.IsBindError(err) {
		return errorInfo{status: http.StatusBadRequest, message: MsgInvalidRequestBody}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info := errorInfo{status: httpErr.Code, message: httpErr.Error()}
		if httpErr.Code >= http.StatusInternalServerError {
			info.message = fallback
		}
		return info
	}

	return errorInfo{status: http.StatusInternalServerError, message: fallback}
}

func logError(log *slog.Logger, r *http.Request, err error, status int) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	log.LogAttrs(r.Context(), level, "request error",
		logger.RequestID(requestid.FromContext(r.Context())),
		logger.Error(err),
		logger.Status(status),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		logger.Component("error_handler"),
	)
}

// ValidationBody is the body of a validation failure.
type ValidationBody struct {
	Errors validator.ValidationErrors `json:"errors"`
}

// NewJSONErrorHandler renders errors for API routes. Validation failures
// become 400 {"errors": [...]}, other client errors {"error": message}.
// Server errors are logged and reported as a generic message.
func NewJSONErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		w, r := ctx.ResponseWriter(), ctx.Request()
		info := classifyError(err, MsgInternalError)
		logError(log, r, err, info.status)

		var resp Response
		if info.validation != nil {
			resp = JSON(ValidationBody{Errors: info.validation}, WithJSONStatus(info.status))
		} else {
			resp = JSONError(info.status, info.message)
		}

		if renderErr := resp.Render(w, r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response", logger.Error(renderErr))
		}
	}
}

// NewErrorHandler renders errors for page routes: an HTML error page for
// regular requests, a toast patch for Datastar requests.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}

	return func(ctx Context, err error) {
		w, r := ctx.ResponseWriter(), ctx.Request()
		info := classifyError(err, MsgPageError)
		logError(log, r, err, info.status)
		rid := requestid.FromContext(r.Context())

		var resp Response
		switch {
		case IsDataStar(r) && cfg.ErrorToast != nil:
			resp = Templ(cfg.ErrorToast(ErrorToastParams{Message: info.message, RequestID: rid}),
				WithTarget(cfg.ToastTarget), WithPatchMode(PatchPrepend))
		case cfg.ErrorPage != nil:
			resp = Templ(cfg.ErrorPage(ErrorPageParams{Error: info.message, StatusCode: info.status, RequestID: rid}),
				WithStatus(info.status))
		default:
			http.Error(w, info.message, info.status)
			return
		}

		if renderErr := resp.Render(w, r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error page",
				logger.RequestID(rid),
				logger.Error(renderErr),
			)
		}
	}
}
