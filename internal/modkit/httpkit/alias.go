// Package httpkit re-exports the platform HTTP helpers modules use, so module
// code never imports internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "muzzle/internal/platform/net/http"
	"muzzle/internal/platform/net/http/bind"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// Response is what return-style handlers produce
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is the platform router seam
	Router = phttp.Router

	// BodyLimit configures request parsing
	BodyLimit = bind.JSONOptions
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// PlainText returns a 200 text/plain response
func PlainText(s string) Response { return phttp.PlainText(s) }

// Error maps err to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// Limit caps the body at n bytes and rejects unknown fields
func Limit(n int64) BodyLimit { return BodyLimit{MaxBytes: n, DisallowUnknown: true} }

// Call adapts a bodiless handler. A returned Response is written as is
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.JSONHandlerNoBody(fn)
}
