// Package domain holds the filter API request and response types
package domain

import "muzzle/internal/core/report"

// Limits
const (
	MaxTextBytes = 64 << 10
	MaxBatch     = 500
	MaxMaskRunes = 16
	// MaxBatchEntries bounds a batch after splitting
	MaxBatchEntries = 5000
)

// CheckRequest carries one text
type CheckRequest struct {
	Text string `json:"text" validate:"required,utf8" example:"이런 씨.발"`
}

// CheckResult is the profanity verdict
type CheckResult struct {
	Profane bool `json:"profane" example:"true"`
}

// CleanRequest carries one text and an optional mask
type CleanRequest struct {
	Text string `json:"text"           validate:"required,utf8"          example:"이런 씨.발"`
	Mask string `json:"mask,omitempty" validate:"omitempty,utf8,max=16" example:"***"`
}

// CleanResult is the masked text
type CleanResult struct {
	Cleaned string `json:"cleaned" example:"이런 ***"`
	Profane bool   `json:"profane" example:"true"`
	Cached  bool   `json:"cached"  example:"false"`
}

// BatchRequest carries many texts. Each is split per Split before filtering
type BatchRequest struct {
	Texts []string `json:"texts"           validate:"required,min=1,max=500,dive,utf8"`
	Split string   `json:"split,omitempty" validate:"omitempty,oneof=whole lines paragraphs" example:"lines"`
	Mask  string   `json:"mask,omitempty"  validate:"omitempty,utf8,max=16" example:"***"`
}

// BatchResult is the structured form of the report
type BatchResult struct {
	BatchID string         `json:"batch_id" example:"0199f1b2-7c4e-7a40-9d0e-4b2a1c6f9e31"`
	Summary report.Summary `json:"summary"`
	Items   []report.Entry `json:"items"`
}

// WordlistView describes the loaded list
type WordlistView struct {
	Version    int      `json:"version"    example:"1"`
	Name       string   `json:"name"       example:"ko-base"`
	Words      []string `json:"words"`
	Lookalikes []string `json:"lookalikes"`
	Rules      int      `json:"rules"      example:"20"`
	Mask       string   `json:"mask"       example:"***"`
}
