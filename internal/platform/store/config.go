package store

import (
	"time"

	"muzzle/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG  PGConfig
	CH  CHConfig
	RDS RedisConfig
}

// PGConfig configures the pgx pool
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int
	Migrate     bool

	ConnectRetries int
	PingTimeout    time.Duration
}

// CHConfig configures the native ClickHouse connection
type CHConfig struct {
	Enabled      bool
	URL          string
	MaxOpenConns int
	DialTimeout  time.Duration
	Migrate      bool
}

// RedisConfig configures the cache client. URL wins over Addr
type RedisConfig struct {
	Enabled  bool
	URL      string
	Addr     string
	Password string
	DB       int
}

// ConfigFromEnv reads SERVICE_PGSQL_*, SERVICE_CLICKHOUSE_* and SERVICE_REDIS_*.
// A backend is enabled when its URL (or Redis addr) is set
func ConfigFromEnv(appName string) Config {
	root := config.New()
	pg := root.Prefix("SERVICE_PGSQL_")
	ch := root.Prefix("SERVICE_CLICKHOUSE_")
	rds := root.Prefix("SERVICE_REDIS_")

	cfg := Config{
		AppName: appName,
		PG: PGConfig{
			URL:            pg.MayString("URL", ""),
			MaxConns:       int32(pg.MayInt("MAX_CONNS", 8)),
			LogSQL:         pg.MayBool("LOG_SQL", false),
			SlowQueryMs:    pg.MayInt("SLOW_MS", 200),
			Migrate:        pg.MayBool("MIGRATE", false),
			ConnectRetries: pg.MayInt("CONNECT_RETRIES", 6),
			PingTimeout:    pg.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		CH: CHConfig{
			URL:          ch.MayString("URL", ""),
			MaxOpenConns: ch.MayInt("MAX_OPEN_CONNS", 4),
			DialTimeout:  ch.MayDuration("DIAL_TIMEOUT", 5*time.Second),
			Migrate:      ch.MayBool("MIGRATE", false),
		},
		RDS: RedisConfig{
			URL:      rds.MayString("URL", ""),
			Addr:     rds.MayString("ADDR", ""),
			Password: rds.MayString("PASSWORD", ""),
			DB:       rds.MayInt("DB", 0),
		},
	}
	cfg.PG.Enabled = cfg.PG.URL != ""
	cfg.CH.Enabled = cfg.CH.URL != ""
	cfg.RDS.Enabled = cfg.RDS.URL != "" || cfg.RDS.Addr != ""
	return cfg
}
