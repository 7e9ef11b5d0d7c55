package cookie

import (
	"net/http"
	"strings"
)

// Config holds cookie manager configuration.
type Config struct {
	Secrets string `env:"COOKIE_SECRETS,required"` // comma separated, newest first
	Domain  string `env:"COOKIE_DOMAIN" envDefault:""`
}

// NewFromConfig creates a Manager from cfg.
// The returned manager defaults to HttpOnly, SameSite=Strict cookies on path "/".
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	var secrets []string
	for s := range strings.SplitSeq(cfg.Secrets, ",") {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}

	base := []Option{WithSameSite(http.SameSiteStrictMode)}
	if cfg.Domain != "" {
		base = append(base, WithDomain(cfg.Domain))
	}

	return New(secrets, append(base, opts...)...)
}
