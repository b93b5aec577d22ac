// Package store is the facade over the optional backends muzzle can use:
// Postgres for the wordlist source and verdict log, ClickHouse for verdict
// analytics and Redis for cached clean results. Every seam is nil when disabled
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"muzzle/internal/platform/logger"
)

// Store holds the opened seams. The zero value is valid and has none
type Store struct {
	Log logger.Logger

	PG  TxRunner
	CH  Clickhouse
	RDS Cache
}

// Row is a single row scan
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports what a write did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the SQL surface repos use
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner runs fn inside a transaction; fn's error rolls back
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar seam. Insert sends rows as one native batch
type Clickhouse interface {
	Insert(ctx context.Context, table string, columns []string, rows [][]any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Ping(ctx context.Context) error
	Close() error
}

// Cache is a string key value store with expiry. A miss is (", false, nil)
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close() error
}

// Pinger reports readiness
type Pinger interface{ Ping(context.Context) error }

// Open opens every backend enabled in cfg. A failure closes what was already opened
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: *logger.Named("store")}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	if cfg.PG.Enabled {
		p, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, fmt.Errorf("store: postgres: %w", err)
		}
		s.PG = p
	}
	if cfg.CH.Enabled {
		c, err := openCH(ctx, cfg, s)
		if err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("store: clickhouse: %w", err)
		}
		s.CH = c
	}
	if cfg.RDS.Enabled {
		r, err := openRedis(ctx, cfg, s)
		if err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("store: redis: %w", err)
		}
		s.RDS = r
	}
	return s, nil
}

// Status is one backend's readiness
type Status struct {
	Name  string `json:"name"            example:"pg"`
	OK    bool   `json:"ok"              example:"true"`
	Error string `json:"error,omitempty" example:""`
}

// Check pings every configured seam and reports each one
func (s *Store) Check(ctx context.Context) []Status {
	if s == nil {
		return nil
	}
	var out []Status
	ping := func(name string, p any) {
		pg, ok := p.(Pinger)
		if !ok {
			return
		}
		st := Status{Name: name, OK: true}
		if err := pg.Ping(ctx); err != nil {
			st.OK = false
			st.Error = err.Error()
		}
		out = append(out, st)
	}
	if s.PG != nil {
		ping("pg", s.PG)
	}
	if s.CH != nil {
		ping("ch", s.CH)
	}
	if s.RDS != nil {
		ping("redis", s.RDS)
	}
	return out
}

// Guard is Check folded into one error
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil store")
	}
	var errs []error
	for _, st := range s.Check(ctx) {
		if !st.OK {
			errs = append(errs, fmt.Errorf("%s: %s", st.Name, st.Error))
		}
	}
	return errors.Join(errs...)
}

// Close closes every opened seam
func (s *Store) Close(_ context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.RDS != nil {
		errs = append(errs, s.RDS.Close())
	}
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
