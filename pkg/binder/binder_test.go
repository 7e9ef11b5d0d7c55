package binder_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intellicall/pkg/binder"
)

type loginRequest struct {
	Email    string  `json:"email" form:"email"`
	Password *string `json:"password" form:"password"`
	Remember bool    `json:"-" form:"remember"`
}

func jsonRequest(body, contentType string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	return r
}

func TestJSON(t *testing.T) {
	t.Parallel()

	bind := binder.JSON()

	t.Run("decodes body", func(t *testing.T) {
		t.Parallel()
		var req loginRequest
		err := bind(jsonRequest(`{"email":"a@b.co","password":"secret"}`, "application/json; charset=utf-8"), &req)
		require.NoError(t, err)
		assert.Equal(t, "a@b.co", req.Email)
		require.NotNil(t, req.Password)
		assert.Equal(t, "secret", *req.Password)
	})

	t.Run("absent optional field stays nil", func(t *testing.T) {
		t.Parallel()
		var req loginRequest
		require.NoError(t, bind(jsonRequest(`{"email":"a@b.co"}`, "application/json"), &req))
		assert.Nil(t, req.Password)
	})

	tests := []struct {
		name        string
		body        string
		contentType string
		wantErr     error
	}{
		{"missing content type", `{}`, "", binder.ErrMissingContentType},
		{"wrong content type", `{}`, "text/plain", binder.ErrUnsupportedMediaType},
		{"empty body", ``, "application/json", binder.ErrFailedToParseJSON},
		{"malformed", `{"email":`, "application/json", binder.ErrFailedToParseJSON},
		{"unknown field", `{"admin":true}`, "application/json", binder.ErrFailedToParseJSON},
		{"trailing data", `{} {}`, "application/json", binder.ErrFailedToParseJSON},
		{"too large", `{"email":"` + strings.Repeat("a", binder.DefaultMaxJSONSize) + `"}`, "application/json", binder.ErrFailedToParseJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var req loginRequest
			err := bind(jsonRequest(tt.body, tt.contentType), &req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, binder.IsBindError(err))
		})
	}
}

func TestForm(t *testing.T) {
	t.Parallel()

	bind := binder.Form()

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()
		form := url.Values{"email": {"a@b.co"}, "password": {"pw"}, "remember": {"on"}}
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var req loginRequest
		require.NoError(t, bind(r, &req))
		assert.Equal(t, "a@b.co", req.Email)
		assert.Equal(t, "pw", *req.Password)
		assert.True(t, req.Remember)
	})

	t.Run("multipart", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("email", "a@b.co"))
		require.NoError(t, mw.Close())

		r := httptest.NewRequest(http.MethodPost, "/", &buf)
		r.Header.Set("Content-Type", mw.FormDataContentType())

		var req loginRequest
		require.NoError(t, bind(r, &req))
		assert.Equal(t, "a@b.co", req.Email)
		assert.Nil(t, req.Password)
	})

	t.Run("rejects json", func(t *testing.T) {
		t.Parallel()
		var req loginRequest
		err := bind(jsonRequest(`{}`, "application/json"), &req)
		assert.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
	})

	t.Run("bad bool", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("remember=maybe"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		var req loginRequest
		assert.ErrorIs(t, bind(r, &req), binder.ErrInvalidForm)
	})
}

func TestPath(t *testing.T) {
	t.Parallel()

	type request struct {
		ID    string `path:"id"`
		Page  int    `path:"page"`
		Other string
	}

	t.Run("chi params", func(t *testing.T) {
		t.Parallel()
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", "abc")
		rctx.URLParams.Add("page", "2")
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

		var req request
		require.NoError(t, binder.Path(nil)(r, &req))
		assert.Equal(t, "abc", req.ID)
		assert.Equal(t, 2, req.Page)
		assert.Empty(t, req.Other)
	})

	t.Run("custom extractor and bad int", func(t *testing.T) {
		t.Parallel()
		extract := func(_ *http.Request, name string) string {
			return map[string]string{"id": "x", "page": "two"}[name]
		}
		var req request
		err := binder.Path(extract)(httptest.NewRequest(http.MethodGet, "/", nil), &req)
		assert.ErrorIs(t, err, binder.ErrFailedToParsePath)
	})

	t.Run("non pointer target", func(t *testing.T) {
		t.Parallel()
		err := binder.Path(nil)(httptest.NewRequest(http.MethodGet, "/", nil), request{})
		assert.ErrorIs(t, err, binder.ErrFailedToParsePath)
	})
}
