package auth

import "errors"

var (
	ErrMissingSecret    = errors.New("auth: token secret is not configured")
	ErrInvalidClaim     = errors.New("auth: claim has no subject")
	ErrInvalidSignature = errors.New("auth: invalid token signature")
	ErrExpired          = errors.New("auth: token expired")
	ErrMalformedToken   = errors.New("auth: malformed token")
)

// Client facing messages of the API challenge.
const (
	MsgAccessTokenRequired = "Access token required"
	MsgInvalidToken        = "Invalid or expired token"
)
