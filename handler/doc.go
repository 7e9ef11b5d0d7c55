// Package handler provides typed HTTP handlers and the responses they return.
//
// A HandlerFunc receives a Context and a request value already populated by
// the configured binders, and returns a Response:
//
//	func login(ctx handler.Context, req LoginRequest) handler.Response {
//		if err := validate(req); err != nil {
//			return handler.Error(err)
//		}
//		return handler.JSON(result)
//	}
//
//	r.Post("/login", handler.Wrap(login,
//		handler.WithBinders[handler.Context, LoginRequest](binder.JSON()),
//		handler.WithErrorHandler[handler.Context, LoginRequest](jsonErrors),
//	))
//
// Errors returned through Error, or produced by binding and rendering, go to
// the ErrorHandler. NewJSONErrorHandler renders API failures as
// {"error": "..."} or {"errors": [...]} bodies; NewErrorHandler renders an HTML
// error page, or a toast patch for Datastar requests.
//
// Templ and Redirect responses detect Datastar requests and answer them with
// server-sent events instead of full documents.
package handler
