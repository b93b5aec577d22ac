// Package service reads and replaces the stored wordlist and resolves the
// list the API filter is built from
package service

import (
	"context"

	"muzzle/internal/core/wordlist"
	"muzzle/internal/modkit/repokit"
	perr "muzzle/internal/platform/errors"
	"muzzle/internal/services/wordlist/repo"
)

// LockKey serializes concurrent Replace calls across processes
const LockKey int64 = 0x6d757a7a6c65

// Svc implements the stored wordlist workflows
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[repo.Storage]
}

// New wraps db so every transaction first takes the wordlist advisory lock
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage]) *Svc {
	if db == nil {
		panic("wordlist.Service requires a non nil TxRunner")
	}
	if binder == nil {
		binder = repo.NewPG()
	}
	return &Svc{
		db:     repokit.WithBeginHooks(db, repokit.AdvisoryLock(LockKey), repokit.SetLocal("lock_timeout", "5s")),
		binder: binder,
	}
}

// EnsureSchema creates the tables
func (s *Svc) EnsureSchema(ctx context.Context) error {
	return s.binder.Bind(s.db).EnsureSchema(ctx)
}

// Load returns the stored list
func (s *Svc) Load(ctx context.Context) (*wordlist.Wordlist, error) {
	wl, err := s.binder.Bind(s.db).Load(ctx)
	return wl, perr.WithOp(err, "wordlist.load")
}

// Replace validates wl and swaps it in atomically
func (s *Svc) Replace(ctx context.Context, wl *wordlist.Wordlist) error {
	if wl == nil {
		return perr.InvalidArgf("wordlist: nil list")
	}
	if err := wl.Validate(); err != nil {
		return perr.Wordlistf(err, "wordlist: replace")
	}
	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		return s.binder.Bind(q).Replace(ctx, wl)
	})
	return perr.WithOp(err, "wordlist.replace")
}
