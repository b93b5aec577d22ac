package httpkit

import (
	"net/http"

	phttp "muzzle/internal/platform/net/http"
)

// Get mounts a bodiless handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// PostJSON binds and validates T, then wraps the result in an envelope
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error), opts ...BodyLimit) {
	r.Post(path, phttp.JSONHandler(h, opts...))
}

// PostBind binds T and lets h pick the Response, e.g. text/plain
func PostBind[T any](r Router, path string, h func(*http.Request, T) Response, opts ...BodyLimit) {
	r.Post(path, phttp.BindHandler(h, opts...))
}
