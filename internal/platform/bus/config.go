package bus

import (
	"time"

	"muzzle/internal/platform/config"
)

// DefaultTopic receives verdict events
const DefaultTopic = "muzzle.verdicts"

// Config configures the Kafka writer
type Config struct {
	Enabled      bool
	Brokers      []string
	Topic        string
	BatchSize    int
	BatchTimeout time.Duration
	Async        bool
	CreateTopic  bool
}

// ConfigFromEnv reads SERVICE_KAFKA_*. Kafka is enabled once brokers are set
func ConfigFromEnv() Config {
	c := config.New().Prefix("SERVICE_KAFKA_")
	cfg := Config{
		Brokers:      c.MayCSV("BROKERS", nil),
		Topic:        c.MayString("TOPIC", DefaultTopic),
		BatchSize:    c.MayInt("BATCH_SIZE", 100),
		BatchTimeout: c.MayDuration("BATCH_TIMEOUT", time.Second),
		Async:        c.MayBool("ASYNC", false),
		CreateTopic:  c.MayBool("CREATE_TOPIC", false),
	}
	cfg.Enabled = len(cfg.Brokers) > 0
	return cfg
}
