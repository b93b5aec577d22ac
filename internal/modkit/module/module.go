// Package module holds the module contract, port lookup and the mounted module list
package module

import (
	phttp "muzzle/internal/platform/net/http"
)

// Module mirrors modkit.Module so port lookups do not import modkit
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
