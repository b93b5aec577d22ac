// Package repo stores a wordlist in Postgres as ordered entries
package repo

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"muzzle/internal/core/wordlist"
	"muzzle/internal/modkit/repokit"
	perr "muzzle/internal/platform/errors"
	"muzzle/internal/platform/store"
)

// Entry kinds
const (
	KindWord      = "word"
	KindLookalike = "lookalike"
)

// Storage is the Postgres wordlist surface
type Storage interface {
	EnsureSchema(ctx context.Context) error
	Load(ctx context.Context) (*wordlist.Wordlist, error)
	// Replace deletes every entry then writes wl. Run it inside a transaction
	Replace(ctx context.Context, wl *wordlist.Wordlist) error
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
CREATE TABLE IF NOT EXISTS wordlist_meta (
	id         smallint PRIMARY KEY DEFAULT 1 CHECK (id = 1),
	version    integer     NOT NULL,
	name       text        NOT NULL DEFAULT '',
	updated_at timestamptz NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS wordlist_entries (
	kind     text    NOT NULL CHECK (kind IN ('word', 'lookalike')),
	position integer NOT NULL,
	value    text    NOT NULL CHECK (btrim(value) <> ''),
	PRIMARY KEY (kind, position)
);`

// EnsureSchema creates both tables when missing
func (s *pg) EnsureSchema(ctx context.Context) error {
	if _, err := s.q.Exec(ctx, schemaSQL); err != nil {
		return perr.FromPostgres(err, "wordlist: ensure schema")
	}
	return nil
}

type entry struct {
	kind  string
	value string
}

type meta struct {
	version int
	name    string
}

// Load reads the list back in position order. A missing meta row is NotFound
func (s *pg) Load(ctx context.Context) (*wordlist.Wordlist, error) {
	m, err := store.One(ctx, s.q, func(r store.Row) (meta, error) {
		var m meta
		err := r.Scan(&m.version, &m.name)
		return m, err
	}, `SELECT version, name FROM wordlist_meta WHERE id = 1`)
	if errors.Is(err, perr.ErrNotFound) {
		return nil, perr.NotFoundf("wordlist: no list stored")
	}
	if perr.IsUndefinedTable(err) {
		return nil, perr.NotFoundf("wordlist: tables missing, set SERVICE_PGSQL_MIGRATE=true")
	}
	if err != nil {
		return nil, perr.FromPostgres(err, "wordlist: load meta")
	}

	entries, err := store.Many(ctx, s.q, func(r store.Row) (entry, error) {
		var e entry
		err := r.Scan(&e.kind, &e.value)
		return e, err
	}, `SELECT kind, value FROM wordlist_entries ORDER BY kind = 'lookalike', position`)
	if err != nil {
		return nil, perr.FromPostgres(err, "wordlist: load entries")
	}

	wl := &wordlist.Wordlist{Version: m.version, Name: m.name}
	for _, e := range entries {
		switch e.kind {
		case KindWord:
			wl.Words = append(wl.Words, e.value)
		case KindLookalike:
			wl.Lookalikes = append(wl.Lookalikes, e.value)
		}
	}
	if err := wl.Validate(); err != nil {
		return nil, perr.Wordlistf(err, "wordlist: stored list invalid")
	}
	return wl, nil
}

// Replace implements Storage
func (s *pg) Replace(ctx context.Context, wl *wordlist.Wordlist) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM wordlist_entries`); err != nil {
		return perr.FromPostgres(err, "wordlist: clear entries")
	}
	if _, err := store.ExecN(ctx, s.q, 1, `
		INSERT INTO wordlist_meta (id, version, name, updated_at) VALUES (1, $1, $2, now())
		ON CONFLICT (id) DO UPDATE SET version = EXCLUDED.version, name = EXCLUDED.name, updated_at = now()`,
		wl.Version, wl.Name); err != nil {
		return perr.FromPostgres(err, "wordlist: write meta")
	}
	rows := make([]entryRow, 0, wl.Len())
	for i, w := range wl.Words {
		rows = append(rows, entryRow{KindWord, i, w})
	}
	for i, p := range wl.Lookalikes {
		rows = append(rows, entryRow{KindLookalike, i, p})
	}
	for chunk := range slices.Chunk(rows, store.RowsPerInsert(entryCols)) {
		sql, args := insertEntries(chunk)
		if _, err := store.ExecN(ctx, s.q, int64(len(chunk)), sql, args...); err != nil {
			if perr.IsDuplicateKey(err) {
				return perr.Conflictf("wordlist: entries written concurrently")
			}
			return perr.FromPostgresf(err, "wordlist: insert %d entries", len(chunk))
		}
	}
	return nil
}

const entryCols = 3

type entryRow struct {
	kind  string
	pos   int
	value string
}

func insertEntries(rows []entryRow) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO wordlist_entries (kind, position, value) VALUES `)
	args := make([]any, 0, len(rows)*entryCols)
	for i, r := range rows {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*entryCols + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d)", base, base+1, base+2)
		args = append(args, r.kind, r.pos, r.value)
	}
	return sb.String(), args
}
