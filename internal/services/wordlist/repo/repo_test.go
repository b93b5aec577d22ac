package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"muzzle/internal/core/wordlist"
	perr "muzzle/internal/platform/errors"
	"muzzle/internal/platform/store"

	"github.com/jackc/pgx/v5/pgconn"
)

type fakeRows struct {
	data [][]any
	idx  int
}

func (r *fakeRows) Next() bool { r.idx++; return r.idx <= len(r.data) }
func (r *fakeRows) Scan(dst ...any) error {
	row := r.data[r.idx-1]
	for i, d := range dst {
		switch p := d.(type) {
		case *int:
			*p = row[i].(int)
		case *string:
			*p = row[i].(string)
		}
	}
	return nil
}
func (r *fakeRows) Err() error        { return nil }
func (r *fakeRows) Close()            {}
func (r *fakeRows) Columns() []string { return nil }

type execCall struct {
	sql  string
	args []any
}

// fakeQ answers Query calls in order from results
type fakeQ struct {
	results [][][]any
	execs   []execCall
	tags    []string
}

func (f *fakeQ) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	f.execs = append(f.execs, execCall{sql, args})
	tag := "DELETE 0"
	if len(f.tags) > 0 {
		tag, f.tags = f.tags[0], f.tags[1:]
	}
	return pgconn.NewCommandTag(tag), nil
}

func (f *fakeQ) Query(context.Context, string, ...any) (store.Rows, error) {
	if len(f.results) == 0 {
		return &fakeRows{}, nil
	}
	data := f.results[0]
	f.results = f.results[1:]
	return &fakeRows{data: data}, nil
}

func (f *fakeQ) QueryRow(context.Context, string, ...any) store.Row { return nil }

func TestLoad(t *testing.T) {
	q := &fakeQ{results: [][][]any{
		{{1, "base"}},
		{{"word", "씨발"}, {"word", "ㅅㅂ"}, {"lookalike", `1\s*8`}},
	}}
	wl, err := NewPG().Bind(q).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if wl.Name != "base" || strings.Join(wl.Words, ",") != "씨발,ㅅㅂ" || len(wl.Lookalikes) != 1 {
		t.Fatalf("wl = %+v", wl)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := NewPG().Bind(&fakeQ{}).Load(context.Background())
	if !errors.Is(err, perr.ErrNotFound) && !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestLoad_RejectsBlankEntry(t *testing.T) {
	q := &fakeQ{results: [][][]any{{{1, ""}}, {{"word", " "}}}}
	_, err := NewPG().Bind(q).Load(context.Background())
	if !errors.Is(err, wordlist.ErrEmptyEntry) {
		t.Fatalf("err = %v", err)
	}
}

func TestReplace(t *testing.T) {
	q := &fakeQ{tags: []string{"DELETE 4", "INSERT 0 1", "INSERT 0 3"}}
	wl := &wordlist.Wordlist{Version: wordlist.CurrentVersion, Name: "x", Words: []string{"a", "b"}, Lookalikes: []string{`1\s*8`}}
	if err := NewPG().Bind(q).Replace(context.Background(), wl); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if len(q.execs) != 3 {
		t.Fatalf("execs = %d", len(q.execs))
	}
	ins := q.execs[2]
	if !strings.Contains(ins.sql, "($7,$8,$9)") || len(ins.args) != 9 {
		t.Fatalf("insert = %s %v", ins.sql, ins.args)
	}
	if ins.args[6] != KindLookalike || ins.args[7] != 0 {
		t.Fatalf("lookalike position restarts at 0: %v", ins.args[6:])
	}
}

func TestReplace_ShortInsertConflicts(t *testing.T) {
	q := &fakeQ{tags: []string{"DELETE 0", "INSERT 0 1", "INSERT 0 1"}}
	wl := &wordlist.Wordlist{Version: wordlist.CurrentVersion, Words: []string{"a", "b"}}
	if err := NewPG().Bind(q).Replace(context.Background(), wl); err == nil {
		t.Fatalf("want row count error")
	}
}

func TestReplace_SplitsAtParamLimit(t *testing.T) {
	per := store.RowsPerInsert(entryCols)
	words := make([]string, per+1)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	q := &fakeQ{tags: []string{"DELETE 0", "INSERT 0 1", fmt.Sprintf("INSERT 0 %d", per), "INSERT 0 1"}}
	wl := &wordlist.Wordlist{Version: wordlist.CurrentVersion, Words: words}
	if err := NewPG().Bind(q).Replace(context.Background(), wl); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if len(q.execs) != 4 {
		t.Fatalf("execs = %d, want delete, meta and two inserts", len(q.execs))
	}
	for _, ins := range q.execs[2:] {
		if len(ins.args) > store.MaxParams {
			t.Fatalf("insert binds %d params", len(ins.args))
		}
	}
	last := q.execs[3]
	if len(last.args) != entryCols || last.args[1] != per || last.args[2] != words[per] {
		t.Fatalf("second insert = %v", last.args)
	}
}

func TestReplace_DuplicateKeyIsConflict(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
	q := &errQ{fakeQ: fakeQ{tags: []string{"DELETE 0", "INSERT 0 1"}}, failAt: 3, err: dup}
	wl := &wordlist.Wordlist{Version: wordlist.CurrentVersion, Words: []string{"a"}}
	err := NewPG().Bind(q).Replace(context.Background(), wl)
	if !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestLoad_MissingTables(t *testing.T) {
	undefined := &pgconn.PgError{Code: "42P01", Message: `relation "wordlist_meta" does not exist`}
	_, err := NewPG().Bind(&errQ{queryErr: undefined}).Load(context.Background())
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
	if !strings.Contains(err.Error(), "SERVICE_PGSQL_MIGRATE") {
		t.Fatalf("err = %v should name the migrate switch", err)
	}
}

// errQ fails the failAt-th Exec (1-based) and every Query when queryErr is set
type errQ struct {
	fakeQ
	failAt   int
	err      error
	queryErr error
}

func (f *errQ) Exec(ctx context.Context, sql string, args ...any) (store.CommandTag, error) {
	tag, _ := f.fakeQ.Exec(ctx, sql, args...)
	if len(f.execs) == f.failAt {
		return nil, f.err
	}
	return tag, nil
}

func (f *errQ) Query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.fakeQ.Query(ctx, sql, args...)
}
