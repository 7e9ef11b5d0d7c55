package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intellicall/pkg/cookie"
	"github.com/dmitrymomot/intellicall/svc/auth"
)

const cookieSecret = "cookie-secret-at-least-thirty-two-characters"

type fixture struct {
	svc     *auth.Service
	session *auth.Session
	valid   string
	expired string
	forged  string
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	svc := newService(t)
	cookies, err := cookie.New([]string{cookieSecret})
	require.NoError(t, err)

	claim := auth.Claim{SubjectID: "customer-1", Email: "bob@example.com"}
	valid, err := svc.Issue(claim, now)
	require.NoError(t, err)
	expired, err := svc.Issue(claim, now.Add(-48*time.Hour))
	require.NoError(t, err)

	other, err := auth.New([]byte("another-secret-another-secret-another"))
	require.NoError(t, err)
	forged, err := other.Issue(claim, now)
	require.NoError(t, err)

	return fixture{
		svc:     svc,
		session: auth.NewSession(cookies),
		valid:   valid,
		expired: expired,
		forged:  forged,
	}
}

// echoClaim writes the subject id of the claim attached by the guard.
var echoClaim = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	claim, ok := auth.ClaimFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	_, _ = w.Write([]byte(claim.SubjectID))
})

func clockAt(t time.Time) auth.GuardOption {
	return auth.WithClock(func() time.Time { return t })
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestAPIGuard(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	h := auth.APIGuard(f.svc, f.session, clockAt(now)).Middleware(echoClaim)

	serve := func(bearer, cookieValue string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
		if bearer != "" {
			r.Header.Set("Authorization", "Bearer "+bearer)
		}
		if cookieValue != "" {
			r.AddCookie(&http.Cookie{Name: "token", Value: cookieValue})
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	t.Run("bearer header", func(t *testing.T) {
		t.Parallel()
		w := serve(f.valid, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "customer-1", w.Body.String())
	})

	t.Run("cookie fallback", func(t *testing.T) {
		t.Parallel()
		w := serve("", f.valid)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("header preferred over stale cookie", func(t *testing.T) {
		t.Parallel()
		w := serve(f.valid, f.expired)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("no token", func(t *testing.T) {
		t.Parallel()
		w := serve("", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Access token required", errorBody(t, w))
	})

	tests := []struct {
		name   string
		bearer string
		cookie string
	}{
		{"expired token in cookie only", "", f.expired},
		{"forged bearer", f.forged, ""},
		{"garbage bearer", "not.a.jwt", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := serve(tt.bearer, tt.cookie)
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Equal(t, "Invalid or expired token", errorBody(t, w))
		})
	}
}

func TestPageGuard(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	h := auth.PageGuard(f.svc, f.session, clockAt(now)).Middleware(echoClaim)

	serve := func(r *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	t.Run("valid cookie", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		r.AddCookie(&http.Cookie{Name: "token", Value: f.valid})
		w := serve(r)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "customer-1", w.Body.String())
	})

	t.Run("no cookie redirects", func(t *testing.T) {
		t.Parallel()
		w := serve(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		assert.Empty(t, w.Result().Cookies(), "nothing to clear")
	})

	t.Run("bearer header is ignored", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		r.Header.Set("Authorization", "Bearer "+f.valid)
		w := serve(r)
		assert.Equal(t, http.StatusSeeOther, w.Code)
	})

	t.Run("tampered cookie is cleared", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		r.AddCookie(&http.Cookie{Name: "token", Value: f.valid + "x"})
		w := serve(r)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "token", cookies[0].Name)
		assert.Less(t, cookies[0].MaxAge, 0)
	})

	t.Run("expired cookie is cleared", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		r.AddCookie(&http.Cookie{Name: "token", Value: f.expired})
		w := serve(r)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		require.Len(t, w.Result().Cookies(), 1)
	})
}

func TestSession(t *testing.T) {
	t.Parallel()

	cookies, err := cookie.New([]string{cookieSecret})
	require.NoError(t, err)
	session := auth.NewSession(cookies, auth.WithSecureCookie(true))

	w := httptest.NewRecorder()
	session.Set(w, "abc")
	set := w.Result().Cookies()
	require.Len(t, set, 1)
	c := set[0]
	assert.Equal(t, "token", c.Name)
	assert.Equal(t, "abc", c.Value)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.Equal(t, 86400, c.MaxAge)
	assert.Equal(t, "/", c.Path)

	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	r.AddCookie(c)
	token, ok := session.Token(r)
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	_, ok = session.Token(httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.False(t, ok)
}
