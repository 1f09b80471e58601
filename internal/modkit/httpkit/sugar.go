package httpkit

import (
	"net/http"

	phttp "asolens/internal/platform/net/http"
)

// Verb sugar delegating to the platform JSON adapters. Bodyless verbs
// take func(*http.Request), body verbs decode the payload into T first

// Get mounts a bodyless JSON endpoint under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	phttp.GetJSON(r, path, h)
}

// Delete mounts a bodyless JSON endpoint under DELETE
func Delete(r Router, path string, h func(*http.Request) (any, error)) {
	phttp.DeleteJSON(r, path, h)
}

// PostJSON mounts a typed JSON-body endpoint under POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, h)
}

// PutJSON mounts a typed JSON-body endpoint under PUT
func PutJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PutJSON(r, path, h)
}

// PatchJSON mounts a typed JSON-body endpoint under PATCH
func PatchJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PatchJSON(r, path, h)
}
