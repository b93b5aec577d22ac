package http

import (
	"net/http"

	"muzzle/internal/platform/net/http/bind"
)

// JSONHandler binds and validates T, calls fn and wraps its result in an envelope
func JSONHandler[T any](fn func(*http.Request, T) (any, error), opts ...bind.JSONOptions) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r, opts...)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}

// BindHandler is JSONHandler for handlers that choose their own Response,
// such as one that answers text/plain
func BindHandler[T any](fn func(*http.Request, T) Response, opts ...bind.JSONOptions) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r, opts...)
		if err != nil {
			return Error(err)
		}
		return fn(r, in)
	})
}

// JSONHandlerNoBody calls fn without reading a body. A returned Response is written as is
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return Error(err)
		}
		if resp, ok := out.(Response); ok {
			return resp
		}
		return OK(out)
	})
}
