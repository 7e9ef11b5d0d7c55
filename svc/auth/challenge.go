package auth

import (
	"net/http"

	"github.com/dmitrymomot/intellicall/handler"
)

// Challenge decides the response when a guarded request is not authenticated.
type Challenge interface {
	OnMissing(w http.ResponseWriter, r *http.Request)
	OnInvalid(w http.ResponseWriter, r *http.Request, err error)
}

// APIChallenge answers 401 for a missing token and 403 for a bad one.
// Every verification failure gets the same body.
type APIChallenge struct{}

func (APIChallenge) OnMissing(w http.ResponseWriter, r *http.Request) {
	handler.WriteJSONError(w, r, http.StatusUnauthorized, MsgAccessTokenRequired)
}

func (APIChallenge) OnInvalid(w http.ResponseWriter, r *http.Request, _ error) {
	handler.WriteJSONError(w, r, http.StatusForbidden, MsgInvalidToken)
}

// PageChallenge redirects to LoginURL, clearing the session cookie first
// when the token was present but invalid.
type PageChallenge struct {
	Session  *Session
	LoginURL string
}

func (c PageChallenge) OnMissing(w http.ResponseWriter, r *http.Request) {
	c.redirect(w, r)
}

func (c PageChallenge) OnInvalid(w http.ResponseWriter, r *http.Request, _ error) {
	c.Session.Clear(w)
	c.redirect(w, r)
}

func (c PageChallenge) redirect(w http.ResponseWriter, r *http.Request) {
	url := c.LoginURL
	if url == "" {
		url = "/login"
	}
	_ = handler.Redirect(url).Render(w, r)
}
