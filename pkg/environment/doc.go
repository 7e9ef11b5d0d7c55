// Package environment carries the application environment (development,
// staging, production) through context.Context and structured logs.
//
// The environment is parsed once at startup with Parse and attached to each
// request by Middleware. Code that needs environment-specific behaviour, such
// as marking cookies Secure in production, asks IsProduction on the request
// context instead of reading configuration directly.
//
//	env := environment.Parse(cfg.AppEnv)
//	r.Use(environment.Middleware(env))
//
//	if environment.IsProduction(r.Context()) {
//		// production-only behaviour
//	}
package environment
