// Package api provides the HTTP API for the application
package api

import (
	"context"

	"muzzle/internal/core/filter"
	"muzzle/internal/core/wordlist"
	"muzzle/internal/platform/bus"
	"muzzle/internal/platform/config"
	"muzzle/internal/platform/logger"
	phttp "muzzle/internal/platform/net/http"
	"muzzle/internal/platform/store"

	"muzzle/internal/modkit"
	"muzzle/internal/modkit/httpkit"
	"muzzle/internal/modkit/module"
	"muzzle/internal/modkit/swaggerkit"

	filtermod "muzzle/internal/services/api/filter/module"
	metamod "muzzle/internal/services/api/meta/module"
	verdictsmod "muzzle/internal/services/verdicts/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Bus            bus.Publisher
	Filter         *filter.Filter
	Wordlist       *wordlist.Wordlist
	EnableSwagger  bool
	EnableProfiler bool
}

// Mounted is what Mount leaves running behind the routes
type Mounted struct {
	Verdicts *verdictsmod.Module
}

// Start runs module startup work such as sink migrations
func (m *Mounted) Start(ctx context.Context) error { return m.Verdicts.Start(ctx) }

// Close drains the verdict recorder
func (m *Mounted) Close(ctx context.Context) error { return m.Verdicts.Close(ctx) }

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) *Mounted {
	deps := modkit.Deps{
		Cfg:      opt.Config,
		Filter:   opt.Filter,
		Wordlist: opt.Wordlist,
	}.FromStore(opt.Store)
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	} else {
		deps.Log = *logger.Get()
	}
	// a Nop bus would only add an empty sink and a misleading ready check
	if _, nop := opt.Bus.(bus.Nop); opt.Bus != nil && !nop {
		deps.Bus = opt.Bus
	}

	// the verdicts module owns the recorder; filter and meta consume its ports
	verdicts := verdictsmod.New(deps, verdictsmod.Options{})
	vp := module.MustPortsOf[verdictsmod.Ports](verdicts)

	mods := []module.Module{
		verdicts,
		filtermod.New(deps, modkit.WithPorts(filtermod.Ports{Recorder: vp.Recorder})),
		metamod.New(deps, modkit.WithPorts(metamod.Ports{Recorder: vp.Recorder, Counter: vp.Counter})),
	}

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	stack := httpkit.CommonStack(httpkit.StackOptionsFromConf(opt.Config))
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			module.Register(m)
			m.MountRoutes(api)
		}
	})

	return &Mounted{Verdicts: verdicts}
}
