// Package modkit wires API modules: shared deps, build options and mounting
package modkit

import (
	"muzzle/internal/core/filter"
	"muzzle/internal/core/wordlist"
	"muzzle/internal/platform/bus"
	"muzzle/internal/platform/config"
	"muzzle/internal/platform/logger"
	"muzzle/internal/platform/store"
)

// Deps holds what modules share. Every backend seam may be nil
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	Store *store.Store
	PG    store.TxRunner
	CH    store.Clickhouse
	Cache store.Cache
	Bus   bus.Publisher

	Filter   *filter.Filter
	Wordlist *wordlist.Wordlist
}

// FromStore fills the backend seams from s
func (d Deps) FromStore(s *store.Store) Deps {
	if s == nil {
		return d
	}
	d.Store = s
	d.PG = s.PG
	d.CH = s.CH
	d.Cache = s.RDS
	return d
}

// Named returns Log with a component field
func (d Deps) Named(component string) logger.Logger {
	return d.Log.With().Str("component", component).Logger()
}

// Publisher returns Bus, or a Nop when none is wired
func (d Deps) Publisher() bus.Publisher {
	if d.Bus == nil {
		return bus.Nop{}
	}
	return d.Bus
}
