package module

import (
	"time"

	"muzzle/internal/platform/config"
)

// Options controls the verdict recorder and its sinks
type Options struct {
	Enabled       bool
	Buffer        int
	BatchSize     int
	FlushInterval time.Duration
	WriteTimeout  time.Duration
	Sinks         []string
	Migrate       bool
}

// FromConfig reads MUZZLE_VERDICTS_* and SERVICE_PGSQL_MIGRATE
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("MUZZLE_VERDICTS_")
	return Options{
		Enabled:       c.MayBool("ENABLED", true),
		Buffer:        c.MayInt("BUFFER", 1024),
		BatchSize:     c.MayInt("BATCH_SIZE", 100),
		FlushInterval: c.MayDuration("FLUSH_INTERVAL", time.Second),
		WriteTimeout:  c.MayDuration("WRITE_TIMEOUT", 5*time.Second),
		Sinks:         c.MayCSV("SINKS", []string{"pg", "ch", "kafka"}),
		Migrate:       cfg.Prefix("SERVICE_PGSQL_").MayBool("MIGRATE", false),
	}
}
