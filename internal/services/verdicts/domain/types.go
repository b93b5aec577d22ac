// Package domain holds the verdict log types
package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
	"unicode/utf8"

	"muzzle/internal/core/filter"

	"github.com/google/uuid"
)

// Op names the endpoint that produced a verdict
type Op string

// Ops that record verdicts
const (
	OpCheck   Op = "check"
	OpClean   Op = "clean"
	OpInspect Op = "inspect"
	OpBatch   Op = "batch"
)

// Verdict is one filtered text as the log keeps it. The raw text is never
// stored, only its sha256
type Verdict struct {
	ID        uuid.UUID `json:"id"                   example:"0199f1b2-7c4e-7a40-9d0e-4b2a1c6f9e31"`
	RequestID string    `json:"request_id,omitempty" example:"muzzle-1/abc-000001"`
	BatchID   string    `json:"batch_id,omitempty"   example:""`
	Op        Op        `json:"op"                   example:"clean"`
	Profane   bool      `json:"profane"              example:"true"`
	HitCount  int       `json:"hit_count"            example:"1"`
	Rules     []string  `json:"rules"`
	TextHash  string    `json:"text_hash"            example:"9f86d081884c7d65..."`
	Length    int       `json:"length"               example:"5"`
	Script    string    `json:"script,omitempty"     example:"Hangul"`
	CreatedAt time.Time `json:"created_at"`
}

// HashText returns the hex sha256 of text
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// FromInspect builds a Verdict from a filter result
func FromInspect(op Op, reqID string, v filter.Verdict) Verdict {
	rules := make([]string, 0, len(v.Hits))
	for _, h := range v.Hits {
		rules = append(rules, h.Source)
	}
	return FromParts(op, reqID, v.Original, v.Profane, rules, v.Hint.Script)
}

// FromParts builds a Verdict when only the outcome is at hand, as on a cache
// hit. Length counts runes of text
func FromParts(op Op, reqID, text string, profane bool, rules []string, script string) Verdict {
	if rules == nil {
		rules = []string{}
	}
	return Verdict{
		ID:        newID(),
		RequestID: reqID,
		Op:        op,
		Profane:   profane,
		HitCount:  len(rules),
		Rules:     rules,
		TextHash:  HashText(text),
		Length:    utf8.RuneCountInString(text),
		Script:    script,
		CreatedAt: time.Now().UTC(),
	}
}

// newID prefers v7 so ids sort by time; it falls back to v4
func newID() uuid.UUID {
	if id, err := uuid.NewV7(); err == nil {
		return id
	}
	return uuid.New()
}
