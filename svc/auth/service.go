package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/intellicall/pkg/jwt"
)

// DefaultTTL is the lifetime of an issued token.
const DefaultTTL = 24 * time.Hour

// Claim is the identity carried by a token.
type Claim struct {
	SubjectID string
	Email     string
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service issues and verifies tokens. It is immutable and safe for concurrent use.
type Service struct {
	codec *jwt.Service
	ttl   time.Duration
}

type Option func(*Service)

// WithTTL sets the token lifetime. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// New creates a Service signing with secret. There is no default secret:
// an empty one returns ErrMissingSecret.
func New(secret []byte, opts ...Option) (*Service, error) {
	codec, err := jwt.New(secret)
	if err != nil {
		return nil, errors.Join(ErrMissingSecret, err)
	}

	s := &Service{codec: codec, ttl: DefaultTTL}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) TTL() time.Duration { return s.ttl }

// Issue signs claim with an expiry of now plus the TTL.
func (s *Service) Issue(claim Claim, now time.Time) (string, error) {
	if claim.SubjectID == "" {
		return "", ErrInvalidClaim
	}

	token, err := s.codec.Generate(tokenClaims{
		Email: claim.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claim.SubjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Verify checks the signature of token and that now is before its expiry.
// Failures wrap ErrInvalidSignature, ErrExpired or ErrMalformedToken.
func (s *Service) Verify(token string, now time.Time) (Claim, error) {
	var claims tokenClaims
	if err := s.codec.Parse(token, &claims, now); err != nil {
		switch {
		case errors.Is(err, jwt.ErrInvalidSignature):
			return Claim{}, errors.Join(ErrInvalidSignature, err)
		case errors.Is(err, jwt.ErrExpiredToken):
			return Claim{}, errors.Join(ErrExpired, err)
		default:
			return Claim{}, errors.Join(ErrMalformedToken, err)
		}
	}

	if claims.Subject == "" {
		return Claim{}, ErrMalformedToken
	}

	return Claim{SubjectID: claims.Subject, Email: claims.Email}, nil
}
