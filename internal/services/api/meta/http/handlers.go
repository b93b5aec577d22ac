// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"strconv"
	"time"

	"muzzle/internal/core/filter"
	"muzzle/internal/core/version"
	"muzzle/internal/core/wordlist"
	"muzzle/internal/modkit/httpkit"
	perr "muzzle/internal/platform/errors"
	"muzzle/internal/platform/store"
	vdom "muzzle/internal/services/verdicts/domain"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Deps are the handler dependencies. Every field but ServiceName may be nil
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Store       *store.Store
	Bus         any
	Filter      *filter.Filter
	Wordlist    *wordlist.Wordlist
	Recorder    vdom.RecorderPort
	Counter     vdom.CounterPort
	// Modules lists the mounted API modules
	Modules func() []string
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/filter", h.filter)
	httpkit.Get(r, "/verdicts", h.verdicts)
}

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"muzzle-api"`
	Started string `json:"started" example:"2026-10-18T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
	Now     string `json:"now"     example:"2026-10-18T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"            example:"pg"`
	Status string `json:"status"          example:"ok"` // ok fail
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-18T13:05:00Z"`
}

// FilterResponse describes the loaded filter
type FilterResponse struct {
	Rules           int         `json:"rules"            example:"20"`
	Mask            string      `json:"mask"             example:"***"`
	WordlistName    string      `json:"wordlist_name"    example:"ko-base"`
	WordlistVersion int         `json:"wordlist_version" example:"1"`
	Verdicts        *vdom.Stats `json:"verdicts,omitempty"`
	Modules         []string    `json:"modules,omitempty"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	now := time.Now().UTC()
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(now.Sub(h.deps.StartedAt) / time.Second),
		Now:     now.Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness check with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Failure 503 {object} ReadyResponse "a dependency failed"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	var checks []ReadyCheck
	for _, st := range h.deps.Store.Check(ctx) {
		c := ReadyCheck{Name: st.Name, Status: "ok"}
		if !st.OK {
			c.Status, c.Error = "fail", st.Error
		}
		checks = append(checks, c)
	}
	if p, ok := h.deps.Bus.(Pinger); ok {
		c := ReadyCheck{Name: "kafka", Status: "ok"}
		if err := p.Ping(ctx); err != nil {
			c.Status, c.Error = "fail", err.Error()
		}
		checks = append(checks, c)
	}
	if h.deps.Filter == nil {
		checks = append(checks, ReadyCheck{Name: "filter", Status: "fail", Error: "no filter loaded"})
	}

	resp := ReadyResponse{Status: "ok", Checks: checks, Now: time.Now().UTC().Format(time.RFC3339)}
	for _, c := range checks {
		if c.Status == "fail" {
			resp.Status = "fail"
			return httpkit.Response{Status: http.StatusServiceUnavailable, Body: resp}, nil
		}
	}
	return resp, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.For(h.deps.ServiceName), nil
}

// swagger:route GET /meta/filter Meta metaFilter
// @Summary Rule count, mask, wordlist version and recorder counters
// @Tags Meta
// @Produce json
// @Success 200 {object} FilterResponse "ok"
// @Router /meta/filter [get]
func (h *handlers) filter(_ *http.Request) (any, error) {
	if h.deps.Filter == nil {
		return nil, perr.Unavailablef("no filter loaded")
	}
	out := FilterResponse{
		Rules: h.deps.Filter.Rules().Len(),
		Mask:  h.deps.Filter.Mask(),
	}
	if wl := h.deps.Wordlist; wl != nil {
		out.WordlistName, out.WordlistVersion = wl.Name, wl.Version
	}
	if h.deps.Recorder != nil {
		st := h.deps.Recorder.Stats()
		out.Verdicts = &st
	}
	if h.deps.Modules != nil {
		out.Modules = h.deps.Modules()
	}
	return out, nil
}

// swagger:route GET /meta/verdicts Meta metaVerdicts
// @Summary Verdict counts over the last hours (Postgres only)
// @Tags Meta
// @Produce json
// @Param hours query int false "window in hours" default(24)
// @Success 200 {object} vdom.Counts "ok"
// @Router /meta/verdicts [get]
func (h *handlers) verdicts(r *http.Request) (any, error) {
	if h.deps.Counter == nil {
		return nil, perr.Unavailablef("verdict log needs postgres")
	}
	hours := 24
	if s := r.URL.Query().Get("hours"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, perr.WithField(perr.InvalidArgf("hours must be an integer"), "hours")
		}
		hours = n
	}
	return h.deps.Counter.CountSince(r.Context(), hours)
}
