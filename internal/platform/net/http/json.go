package http

import (
	"net/http"

	"asolens/internal/platform/net/http/bind"
)

// JSONHandler decodes the request body into T, runs fn, and wraps
// the result in the standard envelope. Decode and handler errors both
// flow through the same error mapping
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return respond(fn(r, in))
	})
}

// JSONHandlerNoBody is JSONHandler for endpoints that take no payload
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		return respond(fn(r))
	})
}

func respond(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	// handlers may shape their own status by returning a Response
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
