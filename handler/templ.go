package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

type templConfig struct {
	status int
	patch  []datastar.PatchElementOption
}

type TemplOption func(*templConfig)

// WithTarget sets the CSS selector a Datastar patch is applied to.
func WithTarget(selector string) TemplOption {
	return func(c *templConfig) {
		c.patch = append(c.patch, datastar.WithSelector(selector))
	}
}

func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return func(c *templConfig) {
		c.patch = append(c.patch, datastar.WithMode(mode))
	}
}

// WithStatus sets the status of a full page render. SSE responses are always 200.
func WithStatus(status int) TemplOption {
	return func(c *templConfig) {
		c.status = status
	}
}

func newTemplConfig(opts []TemplOption) templConfig {
	cfg := templConfig{status: http.StatusOK}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

type templResponse struct {
	partial templ.Component
	full    templ.Component
	cfg     templConfig
}

func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).PatchElementTempl(t.partial, t.cfg.patch...)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(t.cfg.status)
	return t.full.Render(r.Context(), w)
}

// Templ renders component as a full page, or patches it into the DOM for
// Datastar requests.
func Templ(component templ.Component, opts ...TemplOption) Response {
	return templResponse{partial: component, full: component, cfg: newTemplConfig(opts)}
}

// TemplPartial patches partial for Datastar requests and renders full otherwise.
func TemplPartial(partial, full templ.Component, opts ...TemplOption) Response {
	return templResponse{partial: partial, full: full, cfg: newTemplConfig(opts)}
}
