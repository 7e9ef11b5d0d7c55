package site_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/intellicall/internal/moduletest"
	"github.com/dmitrymomot/intellicall/modules/site"
)

func newRouter(t *testing.T) http.Handler {
	env := moduletest.New(t)
	m := site.New(env.Session, env.Logger)

	r := chi.NewRouter()
	m.Pages(r)
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", m.Health())
		r.NotFound(m.APINotFound())
	})
	r.NotFound(m.NotFound())
	return r
}

func TestSite(t *testing.T) {
	t.Parallel()
	h := newRouter(t)

	tests := []struct {
		path     string
		status   int
		contains string
		json     string
	}{
		{path: "/", status: http.StatusOK, contains: "Welcome to IntelliCall"},
		{path: "/privacy", status: http.StatusOK, contains: "Privacy Policy"},
		{path: "/api/health", status: http.StatusOK, json: `{"status":"OK","message":"IntelliCall API is running"}`},
		{path: "/api/nope", status: http.StatusNotFound, json: `{"error":"Not found"}`},
		{path: "/nope", status: http.StatusNotFound, contains: "404"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			w := moduletest.Serve(h, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
			if tt.json != "" {
				assert.JSONEq(t, tt.json, w.Body.String())
			}
			if tt.contains != "" {
				assert.Contains(t, w.Body.String(), tt.contains)
			}
		})
	}
}

func TestLanding_ShowsDashboardLinkWithSession(t *testing.T) {
	t.Parallel()
	h := newRouter(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: "x"})
	w := moduletest.Serve(h, r)
	assert.Contains(t, w.Body.String(), "Go to dashboard")
}
