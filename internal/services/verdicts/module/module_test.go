package module

import (
	"context"
	"strings"
	"testing"
	"time"

	"muzzle/internal/modkit"
	"muzzle/internal/platform/bus"
	"muzzle/internal/platform/store"
)

type fakeDB struct {
	store.TxRunner
	execs []string
}

func (f *fakeDB) Exec(_ context.Context, sql string, _ ...any) (store.CommandTag, error) {
	f.execs = append(f.execs, sql)
	return nil, nil
}

func (f *fakeDB) Tx(_ context.Context, fn func(store.RowQuerier) error) error { return fn(f) }

type fakeCH struct {
	store.Clickhouse
	execs []string
}

func (f *fakeCH) Exec(_ context.Context, sql string, _ ...any) error {
	f.execs = append(f.execs, sql)
	return nil
}

func TestFromConfig(t *testing.T) {
	t.Setenv("MUZZLE_VERDICTS_BATCH_SIZE", "7")
	t.Setenv("MUZZLE_VERDICTS_SINKS", "ch")
	t.Setenv("SERVICE_PGSQL_MIGRATE", "true")
	o := FromConfig(modkit.Deps{}.Cfg)
	if o.BatchSize != 7 || len(o.Sinks) != 1 || o.Sinks[0] != "ch" || !o.Migrate || !o.Enabled {
		t.Fatalf("opts = %+v", o)
	}
	if o.FlushInterval != time.Second || o.Buffer != 1024 {
		t.Fatalf("defaults = %+v", o)
	}
}

func TestNew_SinksFollowDeps(t *testing.T) {
	t.Setenv("SERVICE_PGSQL_MIGRATE", "true")
	db, ch := &fakeDB{}, &fakeCH{}
	m := New(modkit.Deps{PG: db, CH: ch, Bus: bus.Nop{}}, Options{})
	defer func() { _ = m.Close(context.Background()) }()

	p := m.Ports().(Ports)
	if p.Counter == nil || p.Recorder == nil {
		t.Fatalf("ports = %+v", p)
	}
	if got := strings.Join(p.Recorder.Stats().Sinks, ","); got != "pg,ch,kafka" {
		t.Fatalf("sinks = %s", got)
	}
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if len(db.execs) != 1 || len(ch.execs) != 1 {
		t.Fatalf("schemas not ensured: pg=%d ch=%d", len(db.execs), len(ch.execs))
	}
	if m.Name() != "verdicts" {
		t.Fatalf("name = %s", m.Name())
	}
}

func TestNew_NoBackends(t *testing.T) {
	m := New(modkit.Deps{}, Options{Sinks: []string{"pg"}})
	defer func() { _ = m.Close(context.Background()) }()

	p := m.Ports().(Ports)
	if p.Counter != nil || len(p.Recorder.Stats().Sinks) != 0 {
		t.Fatalf("ports = %+v", p)
	}
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start without migrate: %v", err)
	}
}
