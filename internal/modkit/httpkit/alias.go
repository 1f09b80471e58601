// Package httpkit re-exports the platform HTTP seam for modules.
// Modules import httpkit, never internal/platform/net/http, so the
// transport layer stays swappable from one place
package httpkit

import (
	"net/http"

	phttp "asolens/internal/platform/net/http"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// Page is the pagination metadata type
	Page = phttp.Page

	// Response is the status-plus-body pair handlers return
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is the routing surface modules mount against
	Router = phttp.Router
)

// OK wraps data in a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created wraps data in a 201 response
func Created(data any) Response { return phttp.Created(data) }

// NoContent returns a bodyless 204
func NoContent() Response { return phttp.NoContent() }

// Error maps err to a status and error envelope
func Error(err error) Response { return phttp.Error(err) }

// List wraps items and pagination in a 200 response
func List(items any, total, page, size int, cursor string) Response {
	return phttp.List(items, total, page, size, cursor)
}

// Handle adapts a Response-returning function into a mountable Handler
func Handle(fn func(*http.Request) Response) Handler {
	return phttp.Handle(fn)
}
