package auth

import "context"

type claimContextKey struct{}

// WithClaim stores a verified claim in ctx.
func WithClaim(ctx context.Context, claim Claim) context.Context {
	return context.WithValue(ctx, claimContextKey{}, claim)
}

// ClaimFromContext returns the claim stored by Guard.
func ClaimFromContext(ctx context.Context) (Claim, bool) {
	claim, ok := ctx.Value(claimContextKey{}).(Claim)
	return claim, ok
}
