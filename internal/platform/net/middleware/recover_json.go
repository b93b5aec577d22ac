package middleware

import (
	"net/http"
	"runtime/debug"

	perr "muzzle/internal/platform/errors"
	"muzzle/internal/platform/logger"
	pnet "muzzle/internal/platform/net"
	phttp "muzzle/internal/platform/net/http"
)

// RecoverJSON turns a panic into a 500 envelope and logs the stack.
// http.ErrAbortHandler is re-panicked so the server can abort the connection
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if reqID != "" {
				w.Header().Set(RequestIDHeader, reqID)
			}
			phttp.JSON(w, pnet.Error(perr.PanicErrf("internal error"), reqID))
		}()
		next.ServeHTTP(w, r)
	})
}
