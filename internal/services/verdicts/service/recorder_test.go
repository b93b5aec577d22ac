package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"muzzle/internal/services/verdicts/domain"
)

type memSink struct {
	name    string
	mu      sync.Mutex
	batches [][]domain.Verdict
	err     error
	entered chan struct{}
	release chan struct{}
}

func (s *memSink) Name() string { return s.name }

func (s *memSink) Write(_ context.Context, vs []domain.Verdict) error {
	if s.entered != nil {
		s.entered <- struct{}{}
		<-s.release
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, append([]domain.Verdict(nil), vs...))
	return s.err
}

func (s *memSink) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.batches {
		n += len(b)
	}
	return n
}

func v(op domain.Op) domain.Verdict { return domain.Verdict{Op: op, CreatedAt: time.Now()} }

func TestRecorder_FlushesBySizeAndOnClose(t *testing.T) {
	sink := &memSink{name: "mem"}
	r := New(Config{BatchSize: 2, FlushInterval: time.Hour}, sink)

	for i := 0; i < 5; i++ {
		if !r.Record(context.Background(), v(domain.OpCheck)) {
			t.Fatalf("record %d dropped", i)
		}
	}
	if err := r.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := sink.total(); got != 5 {
		t.Fatalf("sink got %d verdicts, want 5", got)
	}
	if len(sink.batches) != 3 || len(sink.batches[0]) != 2 || len(sink.batches[2]) != 1 {
		t.Fatalf("batches = %v", len(sink.batches))
	}
	st := r.Stats()
	if st.Recorded != 5 || st.Flushed != 5 || st.Dropped != 0 || st.LastFlush == nil {
		t.Fatalf("stats = %+v", st)
	}
	if len(st.Sinks) != 1 || st.Sinks[0] != "mem" {
		t.Fatalf("sinks = %v", st.Sinks)
	}

	if r.Record(context.Background(), v(domain.OpCheck)) {
		t.Fatalf("record after close must drop")
	}
	if r.Stats().Dropped != 1 {
		t.Fatalf("drop not counted")
	}
	if err := r.Close(context.Background()); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestRecorder_FlushesOnInterval(t *testing.T) {
	sink := &memSink{name: "mem"}
	r := New(Config{BatchSize: 100, FlushInterval: 10 * time.Millisecond}, sink)
	defer func() { _ = r.Close(context.Background()) }()

	r.Record(context.Background(), v(domain.OpClean))
	deadline := time.Now().Add(2 * time.Second)
	for sink.total() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("interval flush never happened")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRecorder_DropsWhenFull(t *testing.T) {
	sink := &memSink{name: "slow", entered: make(chan struct{}), release: make(chan struct{})}
	r := New(Config{Buffer: 1, BatchSize: 1, FlushInterval: time.Hour}, sink)

	if !r.Record(context.Background(), v(domain.OpCheck)) {
		t.Fatalf("first record dropped")
	}
	<-sink.entered // worker is now stuck in Write

	if !r.Record(context.Background(), v(domain.OpCheck)) {
		t.Fatalf("second record should fit the buffer")
	}
	if r.Record(context.Background(), v(domain.OpCheck)) {
		t.Fatalf("third record should be dropped")
	}

	go func() {
		for range sink.entered {
			sink.release <- struct{}{}
		}
	}()
	sink.release <- struct{}{}
	if err := r.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	close(sink.entered)
	st := r.Stats()
	if st.Recorded != 2 || st.Dropped != 1 || sink.total() != 2 {
		t.Fatalf("stats = %+v total=%d", st, sink.total())
	}
}

func TestRecorder_CloseHonorsContext(t *testing.T) {
	sink := &memSink{name: "stuck", entered: make(chan struct{}, 1), release: make(chan struct{})}
	r := New(Config{BatchSize: 1}, sink)
	r.Record(context.Background(), v(domain.OpCheck))
	<-sink.entered

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := r.Close(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("close = %v, want deadline", err)
	}
	close(sink.release)
}

func TestRecorder_SinkFailureCounted(t *testing.T) {
	bad := &memSink{name: "bad", err: errors.New("down")}
	good := &memSink{name: "good"}
	r := New(Config{BatchSize: 1}, bad, good)
	r.Record(context.Background(), v(domain.OpInspect))
	_ = r.Close(context.Background())

	if st := r.Stats(); st.Failed != 1 || good.total() != 1 {
		t.Fatalf("stats = %+v good=%d", st, good.total())
	}
}

func TestRecorder_NoSinks(t *testing.T) {
	r := New(Config{})
	r.Record(context.Background(), v(domain.OpBatch))
	_ = r.Close(context.Background())
	if st := r.Stats(); st.Recorded != 1 || st.Flushed != 1 || len(st.Sinks) != 0 {
		t.Fatalf("stats = %+v", st)
	}
}
