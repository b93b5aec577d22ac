package repokit

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"muzzle/internal/platform/store"
	"muzzle/internal/platform/testkit"
)

type execCall struct {
	sql  string
	args []any
}

type fakeQ struct {
	execs []execCall
	err   error
}

func (f *fakeQ) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	f.execs = append(f.execs, execCall{sql, args})
	return nil, f.err
}

func (f *fakeQ) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (f *fakeQ) QueryRow(context.Context, string, ...any) store.Row        { return nil }

type fakeTx struct {
	fakeQ
	inner *fakeQ
	txs   int
}

func (f *fakeTx) Tx(_ context.Context, fn func(q Queryer) error) error {
	f.txs++
	return fn(f.inner)
}

func TestWithBeginHooks_OrderAndShortCircuit(t *testing.T) {
	inner := &fakeQ{}
	base := &fakeTx{inner: inner}
	tx := WithBeginHooks(base, AdvisoryLock(42), SetLocal("statement_timeout", "5s"))

	var sawExecs int
	err := WithTx(context.Background(), tx, func(q Queryer) error {
		sawExecs = len(inner.execs)
		return nil
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}
	if base.txs != 1 || sawExecs != 2 {
		t.Fatalf("txs=%d execs before fn=%d", base.txs, sawExecs)
	}
	if inner.execs[0].args[0] != int64(42) || !strings.Contains(inner.execs[0].sql, "pg_advisory_xact_lock") {
		t.Fatalf("lock exec = %+v", inner.execs[0])
	}
	if inner.execs[1].args[0] != "statement_timeout" || inner.execs[1].args[1] != "5s" {
		t.Fatalf("set_config exec = %+v", inner.execs[1])
	}

	inner.err = errors.New("locked out")
	called := false
	err = tx.Tx(context.Background(), func(Queryer) error { called = true; return nil })
	if err == nil || called {
		t.Fatalf("hook error must stop fn: err=%v called=%v", err, called)
	}
	testkit.MustContain(t, err.Error(), "advisory lock 42")
}

func TestHookedTx_DelegatesOutsideTx(t *testing.T) {
	base := &fakeTx{inner: &fakeQ{}}
	tx := WithBeginHooks(base, AdvisoryLock(1))
	if _, err := tx.Exec(context.Background(), "SELECT 1"); err != nil {
		t.Fatalf("exec: %v", err)
	}
	if len(base.execs) != 1 || base.txs != 0 {
		t.Fatalf("direct exec went through tx: %+v", base)
	}
}

type fakePinger struct {
	ctx context.Context
	err error
}

func (f *fakePinger) Ping(ctx context.Context) error {
	f.ctx = ctx
	return f.err
}

func TestMustPing(t *testing.T) {
	testkit.MustPanic(t, func() { MustPing(context.Background(), "pg", nil) })
	testkit.MustPanic(t, func() {
		MustPing(context.Background(), "pg", &fakePinger{err: errors.New("boom")})
	})

	v := testkit.MustPanic(t, func() {
		MustPing(context.Background(), "kafka", &fakePinger{err: errors.New("dial tcp: refused")})
	})
	if err, ok := v.(error); !ok || !strings.Contains(err.Error(), "kafka: dial tcp: refused") {
		t.Fatalf("panic value = %v", v)
	}

	fp := &fakePinger{}
	testkit.MustNotPanic(t, func() { MustPing(context.Background(), "pg", fp) })
	dl, ok := fp.ctx.Deadline()
	if !ok || time.Until(dl) > pingTimeout {
		t.Fatalf("default deadline not applied: %v %v", dl, ok)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	testkit.MustNotPanic(t, func() { MustPing(ctx, "pg", fp) })
	if dl, _ := fp.ctx.Deadline(); time.Until(dl) <= pingTimeout {
		t.Fatalf("caller deadline replaced: %v", dl)
	}
}

type fakeGuard struct{ err error }

func (f fakeGuard) Guard(context.Context) error { return f.err }

func TestMustGuard(t *testing.T) {
	testkit.MustPanic(t, func() { MustGuard(context.Background(), fakeGuard{err: errors.New("ch down")}) })
	testkit.MustNotPanic(t, func() { MustGuard(context.Background(), fakeGuard{}) })
	testkit.MustNotPanic(t, func() { MustGuard(context.Background(), &store.Store{}) })
}

func TestBinder(t *testing.T) {
	b := BindFunc[int](func(q Queryer) int { return len(q.(*fakeQ).execs) })
	if got := MustBind[int](b, &fakeQ{execs: make([]execCall, 3)}); got != 3 {
		t.Fatalf("bound = %d", got)
	}
	testkit.MustPanic(t, func() { _ = MustBind[int](b, nil) })
}
