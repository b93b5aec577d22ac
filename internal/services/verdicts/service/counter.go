package service

import (
	"context"

	"muzzle/internal/modkit/repokit"
	perr "muzzle/internal/platform/errors"
	"muzzle/internal/services/verdicts/domain"
	"muzzle/internal/services/verdicts/repo"
)

// MaxWindowHours bounds CountSince
const MaxWindowHours = 24 * 31

// Counter implements domain.CounterPort over the Postgres log
type Counter struct {
	repo repo.Storage
}

// NewCounter binds the Postgres storage to db
func NewCounter(db repokit.TxRunner, binder repokit.Binder[repo.Storage]) *Counter {
	if db == nil {
		panic("verdicts.Counter requires a non nil TxRunner")
	}
	return &Counter{repo: repokit.MustBind(binder, db)}
}

// CountSince counts verdicts in the last hours
func (c *Counter) CountSince(ctx context.Context, hours int) (domain.Counts, error) {
	if hours <= 0 || hours > MaxWindowHours {
		return domain.Counts{}, perr.WithField(perr.InvalidArgf("hours must be in 1..%d", MaxWindowHours), "hours")
	}
	total, profane, err := c.repo.CountSince(ctx, hours)
	if err != nil {
		return domain.Counts{}, err
	}
	return domain.Counts{Hours: hours, Total: total, Profane: profane}, nil
}
