// Package jwt signs and verifies JSON Web Tokens on top of
// github.com/golang-jwt/jwt/v5 and extracts them from HTTP requests.
//
// Service pins a single HMAC signing method and verifies tokens against an
// explicit instant, which keeps expiry checks deterministic in tests:
//
//	svc, err := jwt.NewFromString(secret)
//	token, err := svc.Generate(claims)
//	err = svc.Parse(token, &claims, time.Now())
//
// Verification failures are reported with the sentinel errors in errors.go
// (ErrExpiredToken, ErrInvalidSignature, ErrInvalidToken) so callers can tell
// an expired token from a forged one with errors.Is.
//
// Token extractors read the raw token from the Authorization header or a
// cookie; FirstOf chains them in priority order.
package jwt
