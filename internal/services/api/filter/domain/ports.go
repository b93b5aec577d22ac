package domain

import (
	"context"

	"muzzle/internal/core/filter"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Check(ctx context.Context, text string) (CheckResult, error)
	Clean(ctx context.Context, text, mask string) (CleanResult, error)
	Inspect(ctx context.Context, text string) (filter.Verdict, error)
	Batch(ctx context.Context, in BatchRequest) (BatchResult, error)
	Report(ctx context.Context, in BatchRequest) (string, error)
	Wordlist(ctx context.Context) WordlistView
}
