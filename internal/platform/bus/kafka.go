package bus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"muzzle/internal/platform/logger"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer Kafka uses
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka is a Publisher over one kafka.Writer
type Kafka struct {
	w       messageWriter
	topic   string
	brokers []string
	log     logger.Logger
}

var _ Publisher = (*Kafka)(nil)

var dial = kafka.DialContext

// NewKafka builds the writer. Nothing connects until the first Publish
func NewKafka(cfg Config, log logger.Logger) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("bus: no brokers")
	}
	if cfg.Topic == "" {
		return nil, errors.New("bus: no topic")
	}
	l := log.With().Str("component", "kafka").Str("topic", cfg.Topic).Logger()
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
		Async:        cfg.Async,
		RequiredAcks: kafka.RequireOne,
		Compression:  kafka.Lz4,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			l.Error().Msgf(msg, args...)
		}),
	}
	return &Kafka{w: w, topic: cfg.Topic, brokers: cfg.Brokers, log: l}, nil
}

// Topic returns the destination topic
func (k *Kafka) Topic() string { return k.topic }

// Publish writes msgs in one call. Zero Time is stamped with now
func (k *Kafka) Publish(ctx context.Context, msgs ...Message) error {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]kafka.Message, len(msgs))
	now := time.Now().UTC()
	for i, m := range msgs {
		km := kafka.Message{Key: []byte(m.Key), Value: m.Value, Time: m.Time}
		if km.Time.IsZero() {
			km.Time = now
		}
		for hk, hv := range m.Headers {
			km.Headers = append(km.Headers, kafka.Header{Key: hk, Value: []byte(hv)})
		}
		out[i] = km
	}
	if err := k.w.WriteMessages(ctx, out...); err != nil {
		return fmt.Errorf("bus: publish %d to %s: %w", len(out), k.topic, err)
	}
	k.log.Debug().Int("count", len(out)).Msg("published")
	return nil
}

// Ping dials the first broker
func (k *Kafka) Ping(ctx context.Context) error {
	conn, err := dial(ctx, "tcp", k.brokers[0])
	if err != nil {
		return err
	}
	return conn.Close()
}

// EnsureTopic creates the topic with one partition if the broker allows it
func (k *Kafka) EnsureTopic(ctx context.Context) error {
	conn, err := dial(ctx, "tcp", k.brokers[0])
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.CreateTopics(kafka.TopicConfig{
		Topic:             k.topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
}

// Close flushes pending async writes
func (k *Kafka) Close() error { return k.w.Close() }

// Open returns Nop when cfg is disabled
func Open(ctx context.Context, cfg Config, log logger.Logger) (Publisher, error) {
	if !cfg.Enabled {
		log.Info().Msg("kafka not configured, verdict events are not published")
		return Nop{}, nil
	}
	k, err := NewKafka(cfg, log)
	if err != nil {
		return nil, err
	}
	if cfg.CreateTopic {
		if err := k.EnsureTopic(ctx); err != nil {
			log.Warn().Err(err).Str("topic", cfg.Topic).Msg("kafka create topic failed")
		}
	}
	return k, nil
}
