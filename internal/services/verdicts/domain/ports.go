package domain

import (
	"context"
	"time"
)

// RecorderPort is what the filter API hands verdicts to. Record never blocks
// and reports false when the verdict was dropped
type RecorderPort interface {
	Record(ctx context.Context, v Verdict) bool
	Stats() Stats
}

// Sink persists a batch of verdicts somewhere
type Sink interface {
	Name() string
	Write(ctx context.Context, vs []Verdict) error
}

// Stats counts what the recorder did since start
type Stats struct {
	Recorded  int64      `json:"recorded"            example:"120"`
	Dropped   int64      `json:"dropped"             example:"0"`
	Flushed   int64      `json:"flushed"             example:"118"`
	Failed    int64      `json:"failed"              example:"0"`
	Sinks     []string   `json:"sinks"`
	LastFlush *time.Time `json:"last_flush,omitempty"`
}

// CounterPort reads aggregate counts back from the verdict log
type CounterPort interface {
	CountSince(ctx context.Context, hours int) (Counts, error)
}

// Counts is a windowed aggregate over the verdict log
type Counts struct {
	Hours   int   `json:"hours"   example:"24"`
	Total   int64 `json:"total"   example:"1200"`
	Profane int64 `json:"profane" example:"87"`
}
