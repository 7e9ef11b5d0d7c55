package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intellicall/pkg/cookie"
)

const (
	secret    = "this-is-a-very-long-secret-key-32-chars-long"
	oldSecret = "this-is-old-very-long-secret-key-32-chars-ok"
)

func newManager(t *testing.T, secrets ...string) *cookie.Manager {
	t.Helper()
	if len(secrets) == 0 {
		secrets = []string{secret}
	}
	m, err := cookie.New(secrets, cookie.WithSameSite(http.SameSiteStrictMode))
	require.NoError(t, err)
	return m
}

// replay copies cookies set on rec into a new request.
func replay(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		secrets []string
		wantErr error
	}{
		{"no secrets", nil, cookie.ErrNoSecret},
		{"only empty secrets", []string{"", ""}, cookie.ErrNoSecret},
		{"too short", []string{"short"}, cookie.ErrSecretTooShort},
		{"valid", []string{secret}, nil},
		{"rotation", []string{secret, oldSecret}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := cookie.New(tt.secrets)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSetGetDelete(t *testing.T) {
	t.Parallel()

	m := newManager(t)

	rec := httptest.NewRecorder()
	m.Set(rec, "token", "abc", cookie.WithMaxAge(86400), cookie.WithSecure(true))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "abc", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 86400, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)

	v, err := m.Get(replay(rec), "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	_, err = m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "token")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)

	del := httptest.NewRecorder()
	m.Delete(del, "token")
	deleted := del.Result().Cookies()
	require.Len(t, deleted, 1)
	assert.Equal(t, "", deleted[0].Value)
	assert.Less(t, deleted[0].MaxAge, 0)
}

func TestEncrypted(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		m := newManager(t)
		rec := httptest.NewRecorder()
		require.NoError(t, m.SetEncrypted(rec, "data", "hello"))
		assert.NotContains(t, rec.Result().Cookies()[0].Value, "hello")

		v, err := m.GetEncrypted(replay(rec), "data")
		require.NoError(t, err)
		assert.Equal(t, "hello", v)
	})

	t.Run("rotated secret still decrypts", func(t *testing.T) {
		t.Parallel()
		old := newManager(t, oldSecret)
		rec := httptest.NewRecorder()
		require.NoError(t, old.SetEncrypted(rec, "data", "hello"))

		rotated := newManager(t, secret, oldSecret)
		v, err := rotated.GetEncrypted(replay(rec), "data")
		require.NoError(t, err)
		assert.Equal(t, "hello", v)
	})

	t.Run("unknown secret fails", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, newManager(t, oldSecret).SetEncrypted(rec, "data", "hello"))

		_, err := newManager(t, secret).GetEncrypted(replay(rec), "data")
		assert.ErrorIs(t, err, cookie.ErrDecryptionFailed)
	})

	t.Run("garbage value", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "data", Value: "!!!"})
		_, err := newManager(t).GetEncrypted(r, "data")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})
}

func TestFlash(t *testing.T) {
	t.Parallel()

	m := newManager(t)

	rec := httptest.NewRecorder()
	require.NoError(t, m.SetFlash(rec, "notice", "Customer not found"))

	read := httptest.NewRecorder()
	var msg string
	require.NoError(t, m.GetFlash(read, replay(rec), "notice", &msg))
	assert.Equal(t, "Customer not found", msg)

	cleared := read.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Less(t, cleared[0].MaxAge, 0)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	m, err := cookie.NewFromConfig(cookie.Config{Secrets: " " + secret + " , " + oldSecret})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.Set(rec, "a", "b")
	assert.Equal(t, http.SameSiteStrictMode, rec.Result().Cookies()[0].SameSite)

	_, err = cookie.NewFromConfig(cookie.Config{})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)
}
