// Package module wires the filter API into the router using modkit
package module

import (
	"muzzle/internal/modkit"
	"muzzle/internal/modkit/httpkit"
	"muzzle/internal/platform/net/middleware"
	filterhttp "muzzle/internal/services/api/filter/http"
	filtersvc "muzzle/internal/services/api/filter/service"
	vdom "muzzle/internal/services/verdicts/domain"
)

// Ports are what the module consumes from other modules
type Ports struct {
	Recorder vdom.RecorderPort
}

// Module implements the filter API module
type Module struct {
	b    modkit.Built
	opts Options
	svc  *filtersvc.Svc
}

// New constructs the filter module. deps.Filter must be set
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("filter"),
		modkit.WithPrefix("/filter"),
		// every body this module reads is JSON; bodiless GETs pass
		modkit.WithMiddlewares(middleware.AllowContentType("application/json")),
	}, opts...)...)
	o := FromConfig(deps.Cfg)

	svcOpts := []filtersvc.Option{filtersvc.WithCache(deps.Cache, o.CacheTTL)}
	if p, ok := b.Ports.(Ports); ok && p.Recorder != nil {
		svcOpts = append(svcOpts, filtersvc.WithRecorder(p.Recorder))
	}

	return &Module{
		b:    b,
		opts: o,
		svc:  filtersvc.New(deps.Filter, deps.Wordlist, svcOpts...),
	}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.MountOn(r, func(rr httpkit.Router) {
		filterhttp.Register(rr, m.svc, filterhttp.Limits{
			TextBody:  m.opts.TextBodyBytes,
			BatchBody: m.opts.BatchBodyBytes,
		})
	})
}

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }

// Ports exposes the service for other modules
func (m *Module) Ports() any { return filtersvc.Service(m.svc) }
