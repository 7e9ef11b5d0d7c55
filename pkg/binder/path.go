package binder

import (
	"net/http"
	"reflect"

	"github.com/go-chi/chi/v5"
)

// PathExtractor returns the raw route parameter named name.
type PathExtractor func(r *http.Request, name string) string

// Path creates a binder for `path:` tagged fields. A nil extractor
// defaults to chi.URLParam.
func Path(extractor PathExtractor) func(r *http.Request, v any) error {
	if extractor == nil {
		extractor = chi.URLParam
	}

	return func(r *http.Request, v any) error {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return bindToStruct(v, "path", nil, ErrFailedToParsePath)
		}

		values := make(map[string][]string)
		rt := rv.Elem().Type()
		for i := range rt.NumField() {
			name, skip := parseFieldTag(rt.Field(i), "path")
			if skip || rt.Field(i).Tag.Get("path") == "" {
				continue
			}
			if value := extractor(r, name); value != "" {
				values[name] = []string{value}
			}
		}

		return bindToStruct(v, "path", values, ErrFailedToParsePath)
	}
}
