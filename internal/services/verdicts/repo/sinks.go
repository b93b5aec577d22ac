package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"muzzle/internal/modkit/repokit"
	"muzzle/internal/platform/bus"
	perr "muzzle/internal/platform/errors"
	"muzzle/internal/platform/store"
	"muzzle/internal/services/verdicts/domain"
)

// PGSink writes batches through Storage, retrying a retryable failure once
type PGSink struct {
	db     repokit.TxRunner
	binder repokit.Binder[Storage]
}

// NewPGSink binds the Postgres storage to db
func NewPGSink(db repokit.TxRunner) *PGSink {
	return &PGSink{db: db, binder: NewPG()}
}

// Name implements domain.Sink
func (s *PGSink) Name() string { return "pg" }

// Write implements domain.Sink
func (s *PGSink) Write(ctx context.Context, vs []domain.Verdict) error {
	st := repokit.MustBind(s.binder, s.db)
	err := st.WriteBatch(ctx, vs)
	if perr.IsRetryable(err) {
		err = st.WriteBatch(ctx, vs)
	}
	return err
}

// EnsureSchema creates the Postgres table
func (s *PGSink) EnsureSchema(ctx context.Context) error {
	return repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		return s.binder.Bind(q).EnsureSchema(ctx)
	})
}

// CHTable is the ClickHouse verdict event table
const CHTable = "verdict_events"

var chColumns = []string{
	"id", "request_id", "batch_id", "op", "profane", "hit_count",
	"rules", "text_hash", "length", "script", "created_at",
}

const chSchemaSQL = `
CREATE TABLE IF NOT EXISTS verdict_events (
	id          UUID,
	request_id  String,
	batch_id    String,
	op          LowCardinality(String),
	profane     Bool,
	hit_count   UInt32,
	rules       Array(String),
	text_hash   FixedString(64),
	length      UInt32,
	script      LowCardinality(String),
	created_at  DateTime64(3, 'UTC')
) ENGINE = MergeTree
ORDER BY (created_at, id)`

// CHSink appends verdicts to ClickHouse as one native batch
type CHSink struct{ ch store.Clickhouse }

// NewCHSink wraps a ClickHouse seam
func NewCHSink(ch store.Clickhouse) *CHSink { return &CHSink{ch: ch} }

// Name implements domain.Sink
func (s *CHSink) Name() string { return "ch" }

// EnsureSchema creates the event table
func (s *CHSink) EnsureSchema(ctx context.Context) error {
	if err := s.ch.Exec(ctx, chSchemaSQL); err != nil {
		return perr.FromClickHouse(err, "verdicts: ensure %s", CHTable)
	}
	return nil
}

// Write implements domain.Sink
func (s *CHSink) Write(ctx context.Context, vs []domain.Verdict) error {
	if len(vs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(vs))
	for _, v := range vs {
		rules := v.Rules
		if rules == nil {
			rules = []string{}
		}
		rows = append(rows, []any{
			v.ID, v.RequestID, v.BatchID, string(v.Op), v.Profane, uint32(v.HitCount),
			rules, v.TextHash, uint32(v.Length), v.Script, v.CreatedAt,
		})
	}
	if err := s.ch.Insert(ctx, CHTable, chColumns, rows); err != nil {
		return perr.FromClickHouse(err, "verdicts: insert %d", len(vs))
	}
	return nil
}

// BusSink publishes each verdict as JSON keyed by its id
type BusSink struct{ pub bus.Publisher }

// NewBusSink wraps a publisher
func NewBusSink(pub bus.Publisher) *BusSink { return &BusSink{pub: pub} }

// Name implements domain.Sink
func (s *BusSink) Name() string { return "kafka" }

// Write implements domain.Sink
func (s *BusSink) Write(ctx context.Context, vs []domain.Verdict) error {
	if len(vs) == 0 {
		return nil
	}
	msgs := make([]bus.Message, 0, len(vs))
	for _, v := range vs {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("verdicts: encode %s: %w", v.ID, err)
		}
		msgs = append(msgs, bus.Message{
			Key:     v.ID.String(),
			Value:   b,
			Headers: map[string]string{"op": string(v.Op), "profane": fmt.Sprint(v.Profane)},
			Time:    v.CreatedAt,
		})
	}
	return s.pub.Publish(ctx, msgs...)
}
