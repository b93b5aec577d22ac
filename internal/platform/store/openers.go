package store

import (
	"context"
	"fmt"
	"time"

	chx "muzzle/internal/platform/store/ch"
	"muzzle/internal/platform/store/pg"
	"muzzle/internal/platform/store/rds"
)

const (
	backoffStart   = 150 * time.Millisecond
	backoffCeiling = 2 * time.Second
)

// seams for tests
var (
	openPGPool  = pg.Open
	openCHConn  = chx.Open
	openRDSConn = rds.Open
)

// openPG opens the pool and pings it with exponential backoff before
// publishing the adapter, so a database still booting does not fail startup
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}
	p, err := openPGPool(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
		AppName:  cfg.AppName,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	attempts := max(cfg.PG.ConnectRetries, 1)
	timeout := cfg.PG.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	var lastErr error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		lastErr = p.Pool.Ping(pctx)
		cancel()
		if lastErr == nil {
			return newPGAdapter(p), nil
		}
		s.Log.Warn().Err(lastErr).Int("attempt", i+1).Dur("backoff", backoff).Msg("postgres not ready")

		select {
		case <-ctx.Done():
			p.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, backoffCeiling)
	}
	p.Close()
	return nil, fmt.Errorf("ping failed after %d attempts: %w", attempts, lastErr)
}

func openCH(ctx context.Context, cfg Config, s *Store) (Clickhouse, error) {
	conn, err := openCHConn(ctx, chx.Config{
		DSN:          cfg.CH.URL,
		Role:         cfg.AppName,
		MaxOpenConns: cfg.CH.MaxOpenConns,
		DialTimeout:  cfg.CH.DialTimeout,
	})
	if err != nil {
		return nil, err
	}
	s.Log.Info().Msg("clickhouse connected")
	return newCHAdapter(conn), nil
}

func openRedis(ctx context.Context, cfg Config, s *Store) (Cache, error) {
	c, err := openRDSConn(ctx, rds.Config{
		URL:      cfg.RDS.URL,
		Addr:     cfg.RDS.Addr,
		Password: cfg.RDS.Password,
		DB:       cfg.RDS.DB,
	})
	if err != nil {
		return nil, err
	}
	s.Log.Info().Int("db", cfg.RDS.DB).Msg("redis connected")
	return newRedisAdapter(c), nil
}
