// Package bus publishes events to Kafka. Producers depend on Publisher so a
// process without brokers runs with Nop
package bus

import (
	"context"
	"time"
)

// Message is one event. Key picks the partition
type Message struct {
	Key     string
	Value   []byte
	Headers map[string]string
	Time    time.Time
}

// Publisher sends messages to the configured topic
type Publisher interface {
	Publish(ctx context.Context, msgs ...Message) error
	Close() error
}

// Nop drops every message
type Nop struct{}

var _ Publisher = Nop{}

func (Nop) Publish(context.Context, ...Message) error { return nil }
func (Nop) Close() error                              { return nil }
