// Package auth issues and verifies customer identity tokens and enforces them
// on HTTP routes.
//
// Service signs a Claim into an HS256 JWT valid for a fixed TTL and verifies
// it against an explicit instant. Guard is the single enforcement middleware:
// it extracts a token, verifies it and stores the Claim in the request
// context. What happens when the token is missing or invalid is delegated to a
// Challenge: APIChallenge answers with JSON 401/403, PageChallenge redirects
// the browser to the login page and drops a bad session cookie.
//
//	svc, err := auth.New([]byte(cfg.JWTSecret), auth.WithTTL(cfg.JWTTTL))
//	session := auth.NewSession(cookies, auth.WithSecureCookie(env.IsProduction()))
//
//	r.With(auth.APIGuard(svc, session).Middleware).Get("/api/customers", ...)
//	r.With(auth.PageGuard(svc, session).Middleware).Get("/dashboard", ...)
//
// A verified claim is trusted as is; the customer record is not re-read by
// the guard.
package auth
