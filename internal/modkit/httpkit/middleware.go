package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"muzzle/internal/platform/config"
	"muzzle/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	Timeout     time.Duration
	SlowRequest time.Duration
	CORSOrigins []string
	MaxInFlight int
}

// StackOptionsFromConf reads TIMEOUT, SLOW_MS, CORS_ORIGINS and MAX_IN_FLIGHT
func StackOptionsFromConf(c config.Conf) StackOptions {
	return StackOptions{
		Timeout:     c.MayDuration("TIMEOUT", 30*time.Second),
		SlowRequest: time.Duration(c.MayInt("SLOW_MS", 500)) * time.Millisecond,
		CORSOrigins: c.MayCSV("CORS_ORIGINS", nil),
		MaxInFlight: c.MayInt("MAX_IN_FLIGHT", 0),
	}
}

// CommonStack is the /api middleware chain every module is mounted behind
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	mws := []func(http.Handler) http.Handler{
		middleware.RealIP(),
		middleware.RequestID(),
		middleware.RequestLogger,
		middleware.AccessLogZerolog(middleware.AccessLogOptions{
			Slow: o.SlowRequest,
			Skip: []string{"/api/v1/meta/health"},
		}),
		middleware.RecoverJSON,
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.NoCache(),
		middleware.Compress(flate.DefaultCompression),
		middleware.Timeout(o.Timeout),
	}
	if o.MaxInFlight > 0 {
		mws = append(mws, middleware.Throttle(o.MaxInFlight, o.MaxInFlight*2, o.Timeout))
	}
	return mws
}
