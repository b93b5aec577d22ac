package store

import (
	"context"
	"fmt"

	perr "muzzle/internal/platform/errors"
)

// ExecN runs a write and checks the affected row count; want < 0 skips the check
func ExecN(ctx context.Context, q RowQuerier, want int64, sql string, args ...any) (int64, error) {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	n := tag.RowsAffected()
	if want >= 0 && n != want {
		return n, perr.Conflictf("expected %d rows affected, got %d", want, n)
	}
	return n, nil
}

// MaxParams is the Postgres cap on bind parameters in one statement
const MaxParams = 65535

// RowsPerInsert is how many rows of cols parameters fit in one statement
func RowsPerInsert(cols int) int { return MaxParams / cols }

// One maps exactly one row; no row is perr.ErrNotFound
func One[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	var zero T
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return zero, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return zero, err
		}
		return zero, perr.ErrNotFound
	}
	item, err := scan(rows)
	if err != nil {
		return zero, err
	}
	if rows.Next() {
		return zero, fmt.Errorf("store: expected 1 row, got more")
	}
	return item, rows.Err()
}

// Many maps every row in order
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
