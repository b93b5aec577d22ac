// Package repo persists verdicts to Postgres, ClickHouse and Kafka
package repo

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"muzzle/internal/modkit/repokit"
	perr "muzzle/internal/platform/errors"
	"muzzle/internal/platform/store"
	pstrings "muzzle/internal/platform/strings"
	"muzzle/internal/services/verdicts/domain"
)

// Storage is the Postgres verdict log
type Storage interface {
	EnsureSchema(ctx context.Context) error
	WriteBatch(ctx context.Context, vs []domain.Verdict) error
	CountSince(ctx context.Context, hours int) (total, profane int64, err error)
}

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

const schemaSQL = `
CREATE TABLE IF NOT EXISTS verdicts (
	id          uuid PRIMARY KEY,
	request_id  text,
	batch_id    text,
	op          text        NOT NULL,
	profane     boolean     NOT NULL,
	hit_count   integer     NOT NULL,
	rules       text[]      NOT NULL DEFAULT '{}',
	text_hash   char(64)    NOT NULL,
	length      integer     NOT NULL,
	script      text,
	created_at  timestamptz NOT NULL
);
CREATE INDEX IF NOT EXISTS verdicts_created_at_idx ON verdicts (created_at);`

// EnsureSchema creates the verdicts table and index when missing
func (s *pg) EnsureSchema(ctx context.Context) error {
	if _, err := s.q.Exec(ctx, schemaSQL); err != nil {
		return perr.FromPostgres(err, "verdicts: ensure schema")
	}
	return nil
}

const verdictCols = 11

// WriteBatch inserts vs, one statement per RowsPerInsert rows. Replayed ids are ignored
func (s *pg) WriteBatch(ctx context.Context, vs []domain.Verdict) error {
	for chunk := range slices.Chunk(vs, store.RowsPerInsert(verdictCols)) {
		sql, args := insertVerdicts(chunk)
		if _, err := s.q.Exec(ctx, sql, args...); err != nil {
			return perr.FromPostgresf(err, "verdicts: insert %d", len(chunk))
		}
	}
	return nil
}

func insertVerdicts(vs []domain.Verdict) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO verdicts
		(id, request_id, batch_id, op, profane, hit_count, rules, text_hash, length, script, created_at) VALUES `)

	args := make([]any, 0, len(vs)*verdictCols)
	for i, v := range vs {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*verdictCols + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base, base+1, base+2, base+3, base+4, base+5,
			base+6, base+7, base+8, base+9, base+10)

		rules := v.Rules
		if rules == nil {
			rules = []string{}
		}
		args = append(args,
			v.ID,
			pstrings.SQLNull(v.RequestID),
			pstrings.SQLNull(v.BatchID),
			string(v.Op),
			v.Profane,
			v.HitCount,
			rules,
			v.TextHash,
			v.Length,
			pstrings.SQLNull(v.Script),
			v.CreatedAt,
		)
	}
	sb.WriteString(` ON CONFLICT (id) DO NOTHING`)
	return sb.String(), args
}

// CountSince counts verdicts and profane verdicts of the last hours
func (s *pg) CountSince(ctx context.Context, hours int) (int64, int64, error) {
	var total, profane int64
	err := s.q.QueryRow(ctx, `
		SELECT count(*), count(*) FILTER (WHERE profane)
		FROM verdicts
		WHERE created_at >= now() - make_interval(hours => $1)`, hours).Scan(&total, &profane)
	if err != nil {
		return 0, 0, perr.FromPostgres(err, "verdicts: count")
	}
	return total, profane, nil
}
