package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intellicall/svc/auth"
)

const secret = "test-secret-that-is-long-enough-for-hs256"

var now = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T, opts ...auth.Option) *auth.Service {
	t.Helper()
	svc, err := auth.New([]byte(secret), opts...)
	require.NoError(t, err)
	return svc
}

func TestNew_RequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := auth.New(nil)
	assert.ErrorIs(t, err, auth.ErrMissingSecret)

	_, err = auth.New([]byte{})
	assert.ErrorIs(t, err, auth.ErrMissingSecret)
}

func TestService_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	claim := auth.Claim{SubjectID: "6ba7b810-9dad-11d1-80b4-00c04fd430c8", Email: "bob@example.com"}

	token, err := svc.Issue(claim, now)
	require.NoError(t, err)

	for _, at := range []time.Time{now, now.Add(time.Hour), now.Add(auth.DefaultTTL - time.Second)} {
		got, err := svc.Verify(token, at)
		require.NoError(t, err, "at %s", at)
		assert.Equal(t, claim, got)
	}
}

func TestService_Expiry(t *testing.T) {
	t.Parallel()

	svc := newService(t, auth.WithTTL(time.Minute))
	assert.Equal(t, time.Minute, svc.TTL())

	token, err := svc.Issue(auth.Claim{SubjectID: "id"}, now)
	require.NoError(t, err)

	_, err = svc.Verify(token, now.Add(time.Minute))
	assert.ErrorIs(t, err, auth.ErrExpired, "exp itself is no longer valid")

	_, err = svc.Verify(token, now.Add(time.Minute+time.Second))
	assert.ErrorIs(t, err, auth.ErrExpired)
	assert.NotErrorIs(t, err, auth.ErrInvalidSignature)
}

func TestService_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := newService(t).Issue(auth.Claim{SubjectID: "id"}, now)
	require.NoError(t, err)

	other, err := auth.New([]byte("a-completely-different-secret-value"))
	require.NoError(t, err)

	_, err = other.Verify(token, now)
	assert.ErrorIs(t, err, auth.ErrInvalidSignature)
	assert.NotErrorIs(t, err, auth.ErrExpired)
}

func TestService_Malformed(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(token, now)
		assert.ErrorIs(t, err, auth.ErrMalformedToken, "token %q", token)
	}

	_, err := svc.Issue(auth.Claim{Email: "no-subject@example.com"}, now)
	assert.ErrorIs(t, err, auth.ErrInvalidClaim)
}
