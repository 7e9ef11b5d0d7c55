package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intellicall/internal/moduletest"
	"github.com/dmitrymomot/intellicall/modules/account"
	"github.com/dmitrymomot/intellicall/modules/customers"
	"github.com/dmitrymomot/intellicall/modules/dashboard"
	"github.com/dmitrymomot/intellicall/modules/site"
	"github.com/dmitrymomot/intellicall/pkg/environment"
)

const origin = "http://localhost:3000"

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	env := moduletest.New(t)
	sqlDB, err := env.DB.DB()
	require.NoError(t, err)

	return newRouter(routerDeps{
		env:        environment.Development,
		log:        env.Logger,
		corsOrigin: origin,
		readiness:  []func(context.Context) error{sqlDB.PingContext},
		site:       site.New(env.Session, env.Logger),
		account:    account.New(env.Tokens, env.Session, env.Customers, env.Cookies, env.PageGuard, account.WithLogger(env.Logger)),
		customers:  customers.New(env.Customers, env.Cookies, env.APIGuard, env.PageGuard, env.Logger),
		dashboard:  dashboard.New(env.Customers, env.Session, env.APIGuard, env.PageGuard, env.Logger),
	})
}

func TestRouter_Fallbacks(t *testing.T) {
	t.Parallel()
	h := testRouter(t)

	w := moduletest.Serve(h, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())

	w = moduletest.Serve(h, httptest.NewRequest(http.MethodGet, "/unknown", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	w = moduletest.Serve(h, httptest.NewRequest(http.MethodGet, "/livez", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ALIVE", w.Body.String())

	w = moduletest.Serve(h, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, "READY", w.Body.String())
}

func TestRouter_Headers(t *testing.T) {
	t.Parallel()
	h := testRouter(t)

	w := moduletest.Serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'self'")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", w.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	r := httptest.NewRequest(http.MethodOptions, "/api/dashboard", nil)
	r.Header.Set("Origin", origin)
	r.Header.Set("Access-Control-Request-Method", http.MethodPut)
	w = moduletest.Serve(h, r)
	assert.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	r = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	r.Header.Set("Origin", "https://evil.example")
	w = moduletest.Serve(h, r)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RegisterLoginDashboard(t *testing.T) {
	t.Parallel()
	h := testRouter(t)

	post := func(path, body string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		return moduletest.Serve(h, r)
	}

	w := post("/api/customers", `{"name":"Eve","email":"eve@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = post("/api/auth/login", `{"email":"eve@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var login account.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	r := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: login.Token})
	w = moduletest.Serve(h, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"textContent":"","updatedAt":"`+mustTime(t, w)+`"}`, w.Body.String())
}

func mustTime(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		UpdatedAt string `json:"updatedAt"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.UpdatedAt)
	return body.UpdatedAt
}
