// Package version reports what binary is running and how it was built
package version

import (
	"fmt"
	"runtime"
)

// BuildInfo is served on /meta/version and printed by the CLIs
type BuildInfo struct {
	Service string `json:"service" example:"muzzle-api"`
	Version string `json:"version" example:"v0.1.0"`
	Commit  string `json:"commit"  example:"abcd123"`
	Date    string `json:"date"    example:"2026-01-02"`
	Go      string `json:"go"      example:"go1.25.0"`
}

// Set via -ldflags "-X 'muzzle/internal/core/version.version=v0.1.0'
// -X 'muzzle/internal/core/version.commit=abcd' -X 'muzzle/internal/core/version.date=2026-01-02'"
var (
	service = "muzzle-api"
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the build information for the default service name
func Info() BuildInfo { return For(service) }

// For returns the build information under another binary name
func For(name string) BuildInfo {
	if name == "" {
		name = service
	}
	return BuildInfo{
		Service: name,
		Version: version,
		Commit:  commit,
		Date:    date,
		Go:      runtime.Version(),
	}
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("%s %s (%s, %s, %s)", b.Service, b.Version, b.Commit, b.Date, b.Go)
}
