package store

import (
	"context"
	"errors"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
)

// fakeRows walks data; Scan copies values into *string, *int64 or *any
type fakeRows struct {
	cols   []string
	data   [][]any
	idx    int
	err    error
	closed bool
}

func newFakeRows(cols []string, data ...[]any) *fakeRows {
	return &fakeRows{cols: cols, data: data, idx: -1}
}

func (r *fakeRows) Next() bool {
	if r.err != nil {
		return false
	}
	r.idx++
	return r.idx < len(r.data)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.idx]
	if len(row) != len(dest) {
		return errors.New("dest len mismatch")
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *int64:
			*p = row[i].(int64)
		case *any:
			*p = row[i]
		default:
			return errors.New("unsupported dest")
		}
	}
	return nil
}

func (r *fakeRows) Err() error        { return r.err }
func (r *fakeRows) Close()            { r.closed = true }
func (r *fakeRows) Columns() []string { return r.cols }

type fakeRow struct{ rows *fakeRows }

func (r fakeRow) Scan(dest ...any) error {
	if !r.rows.Next() {
		return errors.New("no rows")
	}
	return r.rows.Scan(dest...)
}

// fakeQuerier records statements and hands back canned results
type fakeQuerier struct {
	execs   []string
	tag     pgconn.CommandTag
	execErr error
	rows    *fakeRows
	qErr    error
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, _ ...any) (CommandTag, error) {
	f.execs = append(f.execs, sql)
	return f.tag, f.execErr
}

func (f *fakeQuerier) Query(context.Context, string, ...any) (Rows, error) {
	if f.qErr != nil {
		return nil, f.qErr
	}
	return f.rows, nil
}

func (f *fakeQuerier) QueryRow(context.Context, string, ...any) Row { return fakeRow{f.rows} }

// fakeBatch embeds driver.Batch so only the used methods need bodies
type fakeBatch struct {
	driver.Batch
	appended [][]any
	failAt   int
	aborted  bool
	sent     bool
	sendErr  error
}

func (b *fakeBatch) Append(v ...any) error {
	if b.failAt >= 0 && len(b.appended) == b.failAt {
		return errors.New("type mismatch")
	}
	b.appended = append(b.appended, v)
	return nil
}

func (b *fakeBatch) Abort() error { b.aborted = true; return nil }
func (b *fakeBatch) Send() error  { b.sent = true; return b.sendErr }

// fakeCHConn embeds driver.Conn for the same reason
type fakeCHConn struct {
	driver.Conn
	query   string
	batch   *fakeBatch
	prepErr error
	pingErr error
	execs   []string
	closed  bool
}

func (c *fakeCHConn) PrepareBatch(_ context.Context, q string, _ ...driver.PrepareBatchOption) (driver.Batch, error) {
	c.query = q
	if c.prepErr != nil {
		return nil, c.prepErr
	}
	return c.batch, nil
}

func (c *fakeCHConn) Exec(_ context.Context, q string, _ ...any) error {
	c.execs = append(c.execs, q)
	return nil
}

func (c *fakeCHConn) Query(context.Context, string, ...any) (driver.Rows, error) {
	return nil, errors.New("not supported")
}

func (c *fakeCHConn) Ping(context.Context) error { return c.pingErr }
func (c *fakeCHConn) Close() error               { c.closed = true; return nil }

// fakeRedis keeps values in a map
type fakeRedis struct {
	vals    map[string]string
	ttls    map[string]time.Duration
	getErr  error
	pingErr error
	closed  bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{vals: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.vals[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	f.vals[key] = value.(string)
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", f.pingErr)
}

func (f *fakeRedis) Close() error { f.closed = true; return nil }
