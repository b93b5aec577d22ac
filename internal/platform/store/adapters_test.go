package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"muzzle/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
)

type recTracer struct{ evs []pg.QueryEvent }

func (r *recTracer) OnQuery(_ context.Context, ev pg.QueryEvent) { r.evs = append(r.evs, ev) }

type pgxFake struct {
	tag  pgconn.CommandTag
	err  error
	row  pgx.Row
	seen []string
}

func (f *pgxFake) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.seen = append(f.seen, sql)
	return f.tag, f.err
}

func (f *pgxFake) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	f.seen = append(f.seen, sql)
	return nil, f.err
}

func (f *pgxFake) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	f.seen = append(f.seen, sql)
	return f.row
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

func TestTraced_EmitsEvents(t *testing.T) {
	ctx := context.Background()
	rt := &recTracer{}
	f := &pgxFake{tag: pgconn.NewCommandTag("INSERT 0 2")}
	tq := traced{q: f, tracer: rt}

	ct, err := tq.Exec(ctx, "INSERT INTO verdicts VALUES ($1)", "a")
	if err != nil || ct.RowsAffected() != 2 {
		t.Fatalf("Exec = %v, %v", ct, err)
	}
	if len(rt.evs) != 1 || len(rt.evs[0].Args) != 1 || rt.evs[0].Err != nil {
		t.Fatalf("exec event = %+v", rt.evs)
	}

	f.row = errRow{err: pgx.ErrNoRows}
	if err := tq.QueryRow(ctx, "SELECT 1").Scan(new(int)); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("QueryRow err = %v", err)
	}
	if len(rt.evs) != 2 || !errors.Is(rt.evs[1].Err, pgx.ErrNoRows) {
		t.Fatalf("scan error not traced: %+v", rt.evs)
	}

	f.err = errors.New("conn refused")
	if _, err := tq.Query(ctx, "SELECT 1"); err == nil {
		t.Fatalf("query error lost")
	}
	if len(rt.evs) != 3 || rt.evs[2].Err == nil {
		t.Fatalf("query error not traced")
	}
}

func TestTraced_NilTracerAndSlow(t *testing.T) {
	f := &pgxFake{}
	if _, err := (traced{q: f}).Exec(context.Background(), "SELECT 1"); err != nil {
		t.Fatalf("Exec without tracer: %v", err)
	}

	rt := &recTracer{}
	slow := traced{q: slowExec{d: 2 * time.Millisecond}, tracer: rt, slowUS: 1}
	_, _ = slow.Exec(context.Background(), "SELECT pg_sleep(0)")
	if len(rt.evs) != 1 || !rt.evs[0].Slow {
		t.Fatalf("want slow event, got %+v", rt.evs)
	}
}

type slowExec struct{ d time.Duration }

func (s slowExec) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	time.Sleep(s.d)
	return pgconn.NewCommandTag("SELECT 1"), nil
}
func (s slowExec) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }
func (s slowExec) QueryRow(context.Context, string, ...any) pgx.Row        { return errRow{} }

type txFake struct {
	committed, rolledBack bool
	rbErr                 error
}

func (t *txFake) Commit(context.Context) error { t.committed = true; return nil }
func (t *txFake) Rollback(context.Context) error {
	t.rolledBack = true
	return t.rbErr
}

func TestRunTx(t *testing.T) {
	ctx := context.Background()
	q := &fakeQuerier{}

	tx := &txFake{}
	if err := runTx(ctx, tx, q, func(RowQuerier) error { return nil }); err != nil || !tx.committed || tx.rolledBack {
		t.Fatalf("commit path: err=%v tx=%+v", err, tx)
	}

	boom := errors.New("boom")
	tx = &txFake{}
	if err := runTx(ctx, tx, q, func(RowQuerier) error { return boom }); !errors.Is(err, boom) || tx.committed || !tx.rolledBack {
		t.Fatalf("rollback path: err=%v tx=%+v", err, tx)
	}

	tx = &txFake{rbErr: pgx.ErrTxClosed}
	if err := runTx(ctx, tx, q, func(RowQuerier) error { return boom }); err != boom {
		t.Fatalf("closed tx should surface only fn error, got %v", err)
	}

	rb := errors.New("rollback failed")
	tx = &txFake{rbErr: rb}
	err := runTx(ctx, tx, q, func(RowQuerier) error { return boom })
	if !errors.Is(err, boom) || !errors.Is(err, rb) {
		t.Fatalf("want joined error, got %v", err)
	}
}

func TestClickhouseAdapter_Insert(t *testing.T) {
	ctx := context.Background()
	b := &fakeBatch{failAt: -1}
	c := &fakeCHConn{batch: b}
	a := newCHAdapter(c)

	rows := [][]any{{"a", uint8(1)}, {"b", uint8(0)}}
	if err := a.Insert(ctx, "verdicts", []string{"text", "profane"}, rows); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if c.query != "INSERT INTO verdicts (text, profane)" {
		t.Fatalf("query = %q", c.query)
	}
	if !b.sent || !reflect.DeepEqual(b.appended, rows) {
		t.Fatalf("batch = %+v", b)
	}
}

func TestClickhouseAdapter_InsertEdges(t *testing.T) {
	ctx := context.Background()

	c := &fakeCHConn{}
	if err := newCHAdapter(c).Insert(ctx, "verdicts", nil, nil); err != nil || c.query != "" {
		t.Fatalf("empty insert should be a no-op")
	}

	b := &fakeBatch{failAt: 1}
	c = &fakeCHConn{batch: b}
	err := newCHAdapter(c).Insert(ctx, "verdicts", nil, [][]any{{1}, {2}, {3}})
	if err == nil || !b.aborted || b.sent {
		t.Fatalf("append failure: err=%v batch=%+v", err, b)
	}
	if c.query != "INSERT INTO verdicts" {
		t.Fatalf("query without columns = %q", c.query)
	}

	c = &fakeCHConn{prepErr: errors.New("unknown table")}
	if err := newCHAdapter(c).Insert(ctx, "nope", nil, [][]any{{1}}); err == nil {
		t.Fatalf("prepare error lost")
	}

	b = &fakeBatch{failAt: -1, sendErr: errors.New("net")}
	if err := newCHAdapter(&fakeCHConn{batch: b}).Insert(ctx, "verdicts", nil, [][]any{{1}}); err == nil {
		t.Fatalf("send error lost")
	}
}

func TestClickhouseAdapter_PingExecClose(t *testing.T) {
	ctx := context.Background()
	c := &fakeCHConn{}
	a := newCHAdapter(c)
	if err := a.Exec(ctx, "OPTIMIZE TABLE verdicts"); err != nil || len(c.execs) != 1 {
		t.Fatalf("Exec: %v", err)
	}
	if err := a.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if _, err := a.Query(ctx, "SELECT 1"); err == nil {
		t.Fatalf("query error lost")
	}
	_ = a.Close()
	if !c.closed {
		t.Fatalf("Close not forwarded")
	}
	if err := (&clickhouseAdapter{}).Ping(ctx); err == nil {
		t.Fatalf("nil conn should fail Ping")
	}
}

func TestRedisAdapter(t *testing.T) {
	ctx := context.Background()
	f := newFakeRedis()
	c := newRedisAdapter(f)

	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("miss = %v, %v", ok, err)
	}
	if err := c.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if f.ttls["k"] != time.Minute {
		t.Fatalf("ttl = %v", f.ttls["k"])
	}
	if v, ok, err := c.Get(ctx, "k"); !ok || err != nil || v != "v" {
		t.Fatalf("hit = %q, %v, %v", v, ok, err)
	}

	f.getErr = errors.New("READONLY")
	if _, _, err := c.Get(ctx, "k"); err == nil {
		t.Fatalf("get error lost")
	}
	f.pingErr = redis.ErrClosed
	if err := c.Ping(ctx); err == nil {
		t.Fatalf("ping error lost")
	}
	_ = c.Close()
	if !f.closed {
		t.Fatalf("Close not forwarded")
	}
}
