// Package binder populates request structs from HTTP requests.
//
// Each binder reads one source and only touches fields carrying its tag:
//
//	type UpdateRequest struct {
//		ID   string `path:"id"`
//		Text string `json:"text"`
//	}
//
// JSON decodes strictly (unknown fields and trailing data are rejected) with a
// 1MB body cap. Form handles urlencoded and multipart bodies through `form:`
// tags. Path reads route parameters through `path:` tags using an extractor,
// chi.URLParam by default.
package binder
