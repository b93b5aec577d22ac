// Package service implements the filter API workflows over a shared Filter
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"muzzle/internal/core/filter"
	"muzzle/internal/core/langhint"
	"muzzle/internal/core/report"
	"muzzle/internal/core/wordlist"
	perr "muzzle/internal/platform/errors"
	"muzzle/internal/platform/logger"
	pnet "muzzle/internal/platform/net"
	"muzzle/internal/platform/store"
	"muzzle/internal/services/api/filter/domain"
	vdom "muzzle/internal/services/verdicts/domain"

	"github.com/google/uuid"
)

// Service defines the filter service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the filter service
type Svc struct {
	filter *filter.Filter
	wl     *wordlist.Wordlist

	cache    store.Cache
	cacheTTL time.Duration
	keyBase  string

	rec vdom.RecorderPort
}

var _ Service = (*Svc)(nil)

// Option configures Svc
type Option func(*Svc)

// WithCache caches Clean results in c for ttl
func WithCache(c store.Cache, ttl time.Duration) Option {
	return func(s *Svc) {
		if c != nil && ttl > 0 {
			s.cache, s.cacheTTL = c, ttl
		}
	}
}

// WithRecorder hands every verdict to r
func WithRecorder(r vdom.RecorderPort) Option {
	return func(s *Svc) { s.rec = r }
}

// New constructs a filter service. wl may be nil when the filter was not built from a list
func New(f *filter.Filter, wl *wordlist.Wordlist, opts ...Option) *Svc {
	if f == nil {
		panic("filter.Service requires a non nil Filter")
	}
	s := &Svc{filter: f, wl: wl}
	for _, o := range opts {
		o(s)
	}
	s.keyBase = rulesDigest(f.Rules(), wl)
	return s
}

// rulesDigest fingerprints the compiled rules so instances serving different
// lists never share cache entries
func rulesDigest(rs filter.RuleSet, wl *wordlist.Wordlist) string {
	h := sha256.New()
	if wl != nil {
		fmt.Fprintf(h, "%s|%d", wl.Name, wl.Version)
	}
	for i := range rs.Len() {
		r := rs.At(i)
		fmt.Fprintf(h, "\x00%d:%s", r.Kind, r.Source)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func checkText(text string) error {
	if len(text) > domain.MaxTextBytes {
		return perr.WithField(perr.TooLargef("text exceeds %d bytes", domain.MaxTextBytes), "text")
	}
	return nil
}

func checkMask(mask string) error {
	if utf8.RuneCountInString(mask) > domain.MaxMaskRunes {
		return perr.WithField(perr.InvalidArgf("mask exceeds %d characters", domain.MaxMaskRunes), "mask")
	}
	return nil
}

func (s *Svc) record(ctx context.Context, v vdom.Verdict) {
	if s.rec == nil {
		return
	}
	s.rec.Record(ctx, v)
}

// Check reports whether text is profane
func (s *Svc) Check(ctx context.Context, text string) (domain.CheckResult, error) {
	if err := checkText(text); err != nil {
		return domain.CheckResult{}, err
	}
	if s.rec == nil {
		return domain.CheckResult{Profane: s.filter.HasProfanity(text)}, nil
	}
	v := s.filter.Inspect(text)
	s.record(ctx, vdom.FromInspect(vdom.OpCheck, pnet.RequestID(ctx), v))
	return domain.CheckResult{Profane: v.Profane}, nil
}

// cachedClean is what the cache stores per key
type cachedClean struct {
	Cleaned string   `json:"c"`
	Profane bool     `json:"p"`
	Rules   []string `json:"r,omitempty"`
	Script  string   `json:"s,omitempty"`
}

// CacheKey is the cache key for text cleaned with mask
func (s *Svc) CacheKey(text, mask string) string {
	h := sha256.New()
	h.Write([]byte(s.keyBase))
	h.Write([]byte{0})
	h.Write([]byte(mask))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return "muzzle:clean:" + hex.EncodeToString(h.Sum(nil))
}

// Clean masks text. An empty mask uses the filter's own
func (s *Svc) Clean(ctx context.Context, text, mask string) (domain.CleanResult, error) {
	if err := checkText(text); err != nil {
		return domain.CleanResult{}, err
	}
	if err := checkMask(mask); err != nil {
		return domain.CleanResult{}, err
	}
	f := s.filter.WithMask(mask)
	reqID := pnet.RequestID(ctx)

	var key string
	if s.cache != nil {
		key = s.CacheKey(text, f.Mask())
		if hit, ok := s.cacheGet(ctx, key); ok {
			s.record(ctx, vdom.FromParts(vdom.OpClean, reqID, text, hit.Profane, hit.Rules, hit.Script))
			return domain.CleanResult{Cleaned: hit.Cleaned, Profane: hit.Profane, Cached: true}, nil
		}
	}

	v := f.Inspect(text)
	verdict := vdom.FromInspect(vdom.OpClean, reqID, v)
	if s.cache != nil {
		s.cacheSet(ctx, key, cachedClean{Cleaned: v.Cleaned, Profane: v.Profane, Rules: verdict.Rules, Script: v.Hint.Script})
	}
	s.record(ctx, verdict)
	return domain.CleanResult{Cleaned: v.Cleaned, Profane: v.Profane}, nil
}

// cacheGet treats every cache failure as a miss
func (s *Svc) cacheGet(ctx context.Context, key string) (cachedClean, bool) {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("clean cache get failed")
		return cachedClean{}, false
	}
	if !ok {
		return cachedClean{}, false
	}
	var c cachedClean
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		logger.C(ctx).Warn().Err(err).Str("key", key).Msg("clean cache entry unreadable")
		return cachedClean{}, false
	}
	return c, true
}

func (s *Svc) cacheSet(ctx context.Context, key string, c cachedClean) {
	b, err := json.Marshal(c)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(b), s.cacheTTL); err != nil {
		logger.C(ctx).Warn().Err(err).Msg("clean cache set failed")
	}
}

// Inspect returns the full verdict for text
func (s *Svc) Inspect(ctx context.Context, text string) (filter.Verdict, error) {
	if err := checkText(text); err != nil {
		return filter.Verdict{}, err
	}
	v := s.filter.Inspect(text)
	s.record(ctx, vdom.FromInspect(vdom.OpInspect, pnet.RequestID(ctx), v))
	return v, nil
}

// Batch splits and cleans every text. Entries keep their 1 based position
// after splitting; blank ones are counted as skipped
func (s *Svc) Batch(ctx context.Context, in domain.BatchRequest) (domain.BatchResult, error) {
	if len(in.Texts) == 0 || len(in.Texts) > domain.MaxBatch {
		return domain.BatchResult{}, perr.WithField(perr.InvalidArgf("texts must hold 1..%d items", domain.MaxBatch), "texts")
	}
	mode, err := report.ParseSplitMode(in.Split)
	if err != nil {
		return domain.BatchResult{}, perr.WithField(perr.InvalidArgf("%v", err), "split")
	}
	if err := checkMask(in.Mask); err != nil {
		return domain.BatchResult{}, err
	}

	var texts []string
	for i, t := range in.Texts {
		if len(t) > domain.MaxTextBytes {
			return domain.BatchResult{}, perr.WithField(perr.TooLargef("texts[%d] exceeds %d bytes", i, domain.MaxTextBytes), "texts")
		}
		texts = append(texts, report.Split(t, mode)...)
		if len(texts) > domain.MaxBatchEntries {
			return domain.BatchResult{}, perr.WithField(perr.TooLargef("batch splits into more than %d entries", domain.MaxBatchEntries), "texts")
		}
	}

	batchID := uuid.NewString()
	ctx = logger.WithBatch(ctx, batchID)
	f := s.filter.WithMask(in.Mask)
	entries, sum := report.Build(f, texts)

	if s.rec != nil {
		reqID := pnet.RequestID(ctx)
		for _, e := range entries {
			v := vdom.FromParts(vdom.OpBatch, reqID, e.Text, e.Profane, nil, langhint.Detect(e.Text).Script)
			v.BatchID = batchID
			s.record(ctx, v)
		}
	}
	logger.C(ctx).Debug().
		Int("total", sum.Total).
		Int("profane", sum.Profane).
		Int("skipped", sum.Skipped).
		Msg("batch filtered")

	return domain.BatchResult{BatchID: batchID, Summary: sum, Items: entries}, nil
}

// Report runs Batch and renders the plain text log
func (s *Svc) Report(ctx context.Context, in domain.BatchRequest) (string, error) {
	res, err := s.Batch(ctx, in)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := report.Render(&sb, res.Items); err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "render report")
	}
	return sb.String(), nil
}

// Wordlist describes the loaded list and the compiled rules
func (s *Svc) Wordlist(_ context.Context) domain.WordlistView {
	view := domain.WordlistView{
		Rules: s.filter.Rules().Len(),
		Mask:  s.filter.Mask(),
	}
	if s.wl != nil {
		view.Version = s.wl.Version
		view.Name = s.wl.Name
		view.Words = append([]string{}, s.wl.Words...)
		view.Lookalikes = append([]string{}, s.wl.Lookalikes...)
		return view
	}
	for _, r := range s.filter.Rules().Rules() {
		if r.Kind == filter.KindWord {
			view.Words = append(view.Words, r.Source)
		} else {
			view.Lookalikes = append(view.Lookalikes, r.Source)
		}
	}
	return view
}
