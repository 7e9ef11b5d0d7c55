package jwt

import (
	"errors"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set accepted by Service.
type Claims = gojwt.Claims

// RegisteredClaims are the RFC 7519 registered claim names.
type RegisteredClaims = gojwt.RegisteredClaims

// NewNumericDate converts t to a JWT numeric date (second precision).
func NewNumericDate(t time.Time) *gojwt.NumericDate {
	return gojwt.NewNumericDate(t)
}

// Service signs and verifies HS256 tokens with a single key.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	key    []byte
	method gojwt.SigningMethod
}

// New creates a Service. An empty key is rejected with ErrMissingSigningKey.
func New(key []byte) (*Service, error) {
	if len(key) == 0 {
		return nil, ErrMissingSigningKey
	}
	return &Service{
		key:    key,
		method: gojwt.SigningMethodHS256,
	}, nil
}

func NewFromString(key string) (*Service, error) {
	return New([]byte(key))
}

// Generate signs claims and returns the compact token.
func (s *Service) Generate(claims Claims) (string, error) {
	token, err := gojwt.NewWithClaims(s.method, claims).SignedString(s.key)
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}
	return token, nil
}

// Parse verifies tokenString as of instant at and decodes it into claims.
// A token is valid only while at is strictly before its exp claim; tokens
// without exp are rejected.
func (s *Service) Parse(tokenString string, claims Claims, at time.Time) error {
	if tokenString == "" {
		return ErrInvalidToken
	}

	_, err := gojwt.ParseWithClaims(tokenString, claims,
		func(*gojwt.Token) (any, error) { return s.key, nil },
		gojwt.WithValidMethods([]string{s.method.Alg()}),
		gojwt.WithTimeFunc(func() time.Time { return at }),
		gojwt.WithExpirationRequired(),
	)
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
		return errors.Join(ErrInvalidSignature, err)
	case errors.Is(err, gojwt.ErrTokenExpired):
		return errors.Join(ErrExpiredToken, err)
	default:
		return errors.Join(ErrInvalidToken, err)
	}
}
