// Package service runs the verdict recorder: a buffered queue drained by one
// worker that writes batches to every configured sink
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"muzzle/internal/platform/logger"
	ptime "muzzle/internal/platform/time"
	"muzzle/internal/services/verdicts/domain"
)

// Config controls the recorder
type Config struct {
	Buffer        int
	BatchSize     int
	FlushInterval time.Duration
	WriteTimeout  time.Duration
}

func (c Config) withDefaults() Config {
	if c.Buffer <= 0 {
		c.Buffer = 1024
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 5 * time.Second
	}
	return c
}

// Recorder implements domain.RecorderPort
type Recorder struct {
	cfg   Config
	sinks []domain.Sink
	log   *logger.Logger

	mu     sync.RWMutex
	closed bool
	in     chan domain.Verdict
	done   chan struct{}
	once   sync.Once

	recorded  atomic.Int64
	dropped   atomic.Int64
	flushed   atomic.Int64
	failed    atomic.Int64
	lastFlush atomic.Int64
}

var _ domain.RecorderPort = (*Recorder)(nil)

// New starts a recorder writing to sinks. With no sinks verdicts are only counted
func New(cfg Config, sinks ...domain.Sink) *Recorder {
	cfg = cfg.withDefaults()
	r := &Recorder{
		cfg:   cfg,
		sinks: sinks,
		log:   logger.Named("verdicts"),
		in:    make(chan domain.Verdict, cfg.Buffer),
		done:  make(chan struct{}),
	}
	go r.run()
	return r
}

// Record queues v without blocking. A full queue or a closed recorder drops it
func (r *Recorder) Record(ctx context.Context, v domain.Verdict) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		r.dropped.Add(1)
		return false
	}
	select {
	case r.in <- v:
		r.recorded.Add(1)
		return true
	default:
		if r.dropped.Add(1)%100 == 1 {
			logger.C(ctx).Warn().Str("component", "verdicts").Int("buffer", r.cfg.Buffer).Msg("verdict queue full, dropping")
		}
		return false
	}
}

// Stats implements domain.RecorderPort
func (r *Recorder) Stats() domain.Stats {
	names := make([]string, 0, len(r.sinks))
	for _, s := range r.sinks {
		names = append(names, s.Name())
	}
	var last time.Time
	if ns := r.lastFlush.Load(); ns > 0 {
		last = time.Unix(0, ns).UTC()
	}
	return domain.Stats{
		Recorded:  r.recorded.Load(),
		Dropped:   r.dropped.Load(),
		Flushed:   r.flushed.Load(),
		Failed:    r.failed.Load(),
		Sinks:     names,
		LastFlush: ptime.Ptr(last),
	}
}

// Close stops intake and waits for queued verdicts to be written or ctx to end
func (r *Recorder) Close(ctx context.Context) error {
	r.once.Do(func() {
		r.mu.Lock()
		r.closed = true
		close(r.in)
		r.mu.Unlock()
	})
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Recorder) run() {
	defer close(r.done)
	ticker := time.NewTicker(r.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]domain.Verdict, 0, r.cfg.BatchSize)
	for {
		select {
		case v, ok := <-r.in:
			if !ok {
				r.flush(batch)
				return
			}
			batch = append(batch, v)
			if len(batch) >= r.cfg.BatchSize {
				r.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				r.flush(batch)
				batch = batch[:0]
			}
		}
	}
}

// flush writes batch to every sink. A failing sink does not stop the others
func (r *Recorder) flush(batch []domain.Verdict) {
	if len(batch) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.WriteTimeout)
	defer cancel()

	for _, s := range r.sinks {
		if err := s.Write(ctx, batch); err != nil {
			r.failed.Add(1)
			r.log.Error().Err(err).Str("sink", s.Name()).Int("n", len(batch)).Msg("verdict sink write failed")
		}
	}
	r.flushed.Add(int64(len(batch)))
	r.lastFlush.Store(time.Now().UnixNano())
}
