// Package module wires the verdict recorder and exposes its ports
package module

import (
	"context"
	"errors"
	"slices"

	"muzzle/internal/modkit"
	"muzzle/internal/modkit/httpkit"
	"muzzle/internal/services/verdicts/domain"
	"muzzle/internal/services/verdicts/repo"
	"muzzle/internal/services/verdicts/service"
)

// Ports holds the ports exposed by the verdicts module
type Ports struct {
	Recorder domain.RecorderPort
	// Counter is nil without Postgres
	Counter domain.CounterPort
}

type schemaEnsurer interface {
	EnsureSchema(ctx context.Context) error
}

// Module owns the recorder worker. It mounts no routes
type Module struct {
	opts     Options
	recorder *service.Recorder
	ensure   []schemaEnsurer
	ports    Ports
}

// New builds sinks from the seams present in deps and starts the recorder.
// A zero field in overrides keeps the configured value
func New(deps modkit.Deps, overrides Options) *Module {
	opts := FromConfig(deps.Cfg)
	if overrides.Buffer != 0 {
		opts.Buffer = overrides.Buffer
	}
	if overrides.BatchSize != 0 {
		opts.BatchSize = overrides.BatchSize
	}
	if overrides.FlushInterval != 0 {
		opts.FlushInterval = overrides.FlushInterval
	}
	if overrides.Sinks != nil {
		opts.Sinks = overrides.Sinks
	}

	m := &Module{opts: opts}
	var sinks []domain.Sink
	if opts.Enabled {
		if deps.PG != nil && slices.Contains(opts.Sinks, "pg") {
			s := repo.NewPGSink(deps.PG)
			sinks = append(sinks, s)
			m.ensure = append(m.ensure, s)
		}
		if deps.CH != nil && slices.Contains(opts.Sinks, "ch") {
			s := repo.NewCHSink(deps.CH)
			sinks = append(sinks, s)
			m.ensure = append(m.ensure, s)
		}
		if deps.Bus != nil && slices.Contains(opts.Sinks, "kafka") {
			sinks = append(sinks, repo.NewBusSink(deps.Bus))
		}
	}

	m.recorder = service.New(service.Config{
		Buffer:        opts.Buffer,
		BatchSize:     opts.BatchSize,
		FlushInterval: opts.FlushInterval,
		WriteTimeout:  opts.WriteTimeout,
	}, sinks...)
	m.ports = Ports{Recorder: m.recorder}
	if deps.PG != nil {
		m.ports.Counter = service.NewCounter(deps.PG, repo.NewPG())
	}
	return m
}

// Start creates sink tables when migrations are enabled
func (m *Module) Start(ctx context.Context) error {
	if !m.opts.Migrate {
		return nil
	}
	var errs []error
	for _, e := range m.ensure {
		errs = append(errs, e.EnsureSchema(ctx))
	}
	return errors.Join(errs...)
}

// Close drains the recorder
func (m *Module) Close(ctx context.Context) error { return m.recorder.Close(ctx) }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "verdicts" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
