package module

import (
	"time"

	"muzzle/internal/platform/config"
	"muzzle/internal/services/api/filter/domain"
)

// Options controls the filter API module
type Options struct {
	CacheTTL       time.Duration
	TextBodyBytes  int64
	BatchBodyBytes int64
}

// FromConfig reads MUZZLE_FILTER_CACHE_TTL and the body limits. A zero TTL disables the cache
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("MUZZLE_FILTER_")
	return Options{
		CacheTTL:       c.MayDuration("CACHE_TTL", 10*time.Minute),
		TextBodyBytes:  int64(c.MayInt("TEXT_BODY_BYTES", 2*domain.MaxTextBytes+1024)),
		BatchBodyBytes: int64(c.MayInt("BATCH_BODY_BYTES", 8<<20)),
	}
}
