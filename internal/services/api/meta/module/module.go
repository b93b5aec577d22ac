// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "muzzle/internal/modkit"
	"muzzle/internal/modkit/httpkit"
	"muzzle/internal/modkit/module"
	metahttp "muzzle/internal/services/api/meta/http"
	vdom "muzzle/internal/services/verdicts/domain"
)

// Ports are what meta reads from other modules
type Ports struct {
	Recorder vdom.RecorderPort
	Counter  vdom.CounterPort
}

// Module implements the modkit.Module interface
type Module struct {
	b         modkit.Built
	deps      modkit.Deps
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)
	return &Module{b: b, deps: deps, startedAt: time.Now()}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	p, _ := m.b.Ports.(Ports)
	d := metahttp.Deps{
		ServiceName: m.deps.Cfg.MayString("SERVICE_NAME", "muzzle-api"),
		StartedAt:   m.startedAt,
		Store:       m.deps.Store,
		Filter:      m.deps.Filter,
		Wordlist:    m.deps.Wordlist,
		Recorder:    p.Recorder,
		Counter:     p.Counter,
		Modules:     module.Names,
	}
	if m.deps.Bus != nil {
		d.Bus = m.deps.Bus
	}
	m.b.MountOn(r, func(rr httpkit.Router) { metahttp.Register(rr, d) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.b.Name }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
