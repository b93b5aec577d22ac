package modkit

import (
	"net/http"

	phttp "muzzle/internal/platform/net/http"
	pstrings "muzzle/internal/platform/strings"
)

// Built is the resolved option set a module keeps
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
}

// Build applies opts in order. Later options win
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	return Built{
		Name:   c.name,
		Prefix: c.prefix,
		Mw:     append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:  c.ports,
	}
}

// MountOn routes b.Prefix on r with the module middleware, then calls routes
func (b Built) MountOn(r phttp.Router, routes func(phttp.Router)) {
	r.Route(pstrings.MustPrefix(b.Prefix), func(rr phttp.Router) {
		if len(b.Mw) > 0 {
			rr.Use(b.Mw...)
		}
		if routes != nil {
			routes(rr)
		}
	})
}
