package handler

import (
	"encoding/json"
	"net/http"
)

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

type JSONOption func(*jsonResponse)

// WithJSONStatus overrides the default 200 status.
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// JSON encodes v as the response body.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: v}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ErrorBody is the body of a single message API failure.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSONError writes {"error": message} with the given status.
func JSONError(status int, message string) Response {
	return jsonResponse{status: status, body: ErrorBody{Error: message}}
}

// WriteJSONError writes a JSONError response directly, for use in middleware.
func WriteJSONError(w http.ResponseWriter, r *http.Request, status int, message string) {
	_ = JSONError(status, message).Render(w, r)
}
