// Package http writes JSON envelopes and plain text bodies and hosts the chi backed server
package http

import (
	"encoding/json"
	stdhttp "net/http"

	"muzzle/internal/platform/logger"
	pnet "muzzle/internal/platform/net"
)

// Envelope is the standard response body for all JSON endpoints
type Envelope = pnet.Envelope

const (
	contentJSON = "application/json; charset=utf-8"
	contentText = "text/plain; charset=utf-8"
)

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Named("http").Warn().Err(err).Msg("encode response")
	}
}

// Text writes s as text/plain with the given status
func Text(w stdhttp.ResponseWriter, status int, s string) {
	w.Header().Set("Content-Type", contentText)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(s))
}

// RespondError maps err into an envelope and writes it. 5xx errors are logged
// with their full text since the envelope may hide it
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, env := pnet.Error(err, pnet.RequestID(r.Context()))
	if status >= stdhttp.StatusInternalServerError {
		logger.C(r.Context()).Error().Err(err).Int("status", status).Str("path", r.URL.Path).Msg("request failed")
	}
	JSON(w, status, env)
}

// Response is what return-style handlers produce.
// An error Body becomes an error envelope; a Text response skips the envelope
type Response struct {
	Status int
	Body   any
	Text   string
	Header stdhttp.Header
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	if err, ok := resp.Body.(error); ok && err != nil {
		RespondError(w, r, err)
		return
	}

	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if resp.Text != "" {
		Text(w, status, resp.Text)
		return
	}
	JSON(w, pnet.Status(status, resp.Body, pnet.RequestID(r.Context())))
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// PlainText returns a 200 text/plain response
func PlainText(s string) Response { return Response{Status: stdhttp.StatusOK, Text: s} }

// Error returns a response that maps err to status and envelope
func Error(err error) Response { return Response{Body: err} }
