// Package http provides http transport for the filter API
package http

import (
	stdhttp "net/http"
	"strings"

	"muzzle/internal/modkit/httpkit"
	"muzzle/internal/services/api/filter/domain"
)

// Limits caps request bodies per route
type Limits struct {
	TextBody  int64
	BatchBody int64
}

// Register mounts filter endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort, lim Limits) {
	h := &handlers{svc: s}
	text := httpkit.Limit(lim.TextBody)

	httpkit.PostJSON(r, "/check", h.check, text)
	httpkit.PostJSON(r, "/clean", h.clean, text)
	httpkit.PostJSON(r, "/inspect", h.inspect, text)

	// json by default, the text log when the client asks for text/plain
	httpkit.PostBind(r, "/batch", h.batch, httpkit.Limit(lim.BatchBody))

	httpkit.Get(r, "/wordlist", h.wordlist)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /filter/check Filter filterCheck
// @Summary Report whether text contains profanity
// @Tags Filter
// @Accept json
// @Produce json
// @Param payload body domain.CheckRequest true "Text"
// @Success 200 {object} domain.CheckResult "ok"
// @Router /filter/check [post]
func (h *handlers) check(r *stdhttp.Request, in domain.CheckRequest) (any, error) {
	return h.svc.Check(r.Context(), in.Text)
}

// swagger:route POST /filter/clean Filter filterClean
// @Summary Mask every match with the mask token
// @Tags Filter
// @Accept json
// @Produce json
// @Param payload body domain.CleanRequest true "Text and optional mask"
// @Success 200 {object} domain.CleanResult "ok"
// @Router /filter/clean [post]
func (h *handlers) clean(r *stdhttp.Request, in domain.CleanRequest) (any, error) {
	return h.svc.Clean(r.Context(), in.Text, in.Mask)
}

// swagger:route POST /filter/inspect Filter filterInspect
// @Summary Normalized text, hits per rule and script hint
// @Tags Filter
// @Accept json
// @Produce json
// @Param payload body domain.CheckRequest true "Text"
// @Success 200 {object} filter.Verdict "ok"
// @Router /filter/inspect [post]
func (h *handlers) inspect(r *stdhttp.Request, in domain.CheckRequest) (any, error) {
	return h.svc.Inspect(r.Context(), in.Text)
}

// swagger:route POST /filter/batch Filter filterBatch
// @Summary Clean many texts
// @Description Accept text/plain returns the plain text log instead of JSON
// @Tags Filter
// @Accept json
// @Produce json,plain
// @Param payload body domain.BatchRequest true "Texts"
// @Success 200 {object} domain.BatchResult "ok"
// @Router /filter/batch [post]
func (h *handlers) batch(r *stdhttp.Request, in domain.BatchRequest) httpkit.Response {
	if wantsText(r) {
		out, err := h.svc.Report(r.Context(), in)
		if err != nil {
			return httpkit.Error(err)
		}
		return httpkit.PlainText(out)
	}
	out, err := h.svc.Batch(r.Context(), in)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.OK(out)
}

// swagger:route GET /filter/wordlist Filter filterWordlist
// @Summary The loaded wordlist and its compiled rules
// @Tags Filter
// @Produce json
// @Success 200 {object} domain.WordlistView "ok"
// @Router /filter/wordlist [get]
func (h *handlers) wordlist(r *stdhttp.Request) (any, error) {
	return h.svc.Wordlist(r.Context()), nil
}

func wantsText(r *stdhttp.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/plain") && !strings.Contains(accept, "application/json")
}
