package modkit

import (
	phttp "muzzle/internal/platform/net/http"
)

// Module is the surface API modules share: mount routes, expose ports
type Module interface {
	// MountRoutes mounts HTTP routes under r
	MountRoutes(r phttp.Router)
	// Ports returns the module's port set for cross wiring, or nil
	Ports() any
	// Name returns the module name
	Name() string
}

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module
