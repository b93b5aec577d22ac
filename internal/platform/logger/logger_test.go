package logger

import (
	"bytes"
	"context"
	"testing"

	kit "muzzle/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"fatal":   zerolog.FatalLevel,
		"panic":   zerolog.PanicLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		" what ":  zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

// Init is once per process, so everything that depends on the root writer lives here
func TestInit_ChildrenCarryContext(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:        "debug",
		Format:       "json",
		Service:      "muzzle-test",
		Writer:       &buf,
		SampleEvery:  2,
		StaticFields: map[string]string{"build": "test"},
	})

	// resample to N=1 so every line is written
	one := &zerolog.BasicSampler{N: 1}

	r := Get().Sample(one)
	r.Info().Msg("root-msg")

	n := Named("filter").Sample(one)
	n.Info().Msg("named-msg")

	ctx := WithBatch(WithRequest(context.Background(), "req-123"), "batch-9")
	c := C(ctx).Sample(one)
	c.Info().Msg("ctx-msg")

	bg := C(context.Background()).Sample(one)
	bg.Info().Msg("bg-msg")

	out := buf.String()
	for _, want := range []string{
		"root-msg", "named-msg", "ctx-msg", "bg-msg",
		`"component":"filter"`,
		`"request_id":"req-123"`,
		`"batch_id":"batch-9"`,
		`"service":"muzzle-test"`,
		`"build":"test"`,
	} {
		kit.MustContain(t, out, want)
	}

	if Named("") != Get() {
		t.Fatalf("Named(\"\") should return the root logger")
	}
}

func TestWithRequest_BlankIsNoop(t *testing.T) {
	ctx := context.Background()
	if WithRequest(ctx, "") != ctx || WithBatch(ctx, "") != ctx {
		t.Fatalf("blank ids should not wrap the context")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "muzzle-report")
	t.Setenv("LOG_COMPONENT", "cli")
	t.Setenv("LOG_CALLER", "yes")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" {
		t.Fatalf("level/format = %q/%q", opt.Level, opt.Format)
	}
	if opt.Service != "muzzle-report" || opt.Component != "cli" {
		t.Fatalf("service/component = %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("caller/sample = %+v", opt)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"LOG_LEVEL", "LOG_FORMAT", "LOG_SERVICE", "LOG_COMPONENT", "LOG_CALLER", "LOG_SAMPLE_EVERY"} {
		t.Setenv(k, "")
	}
	opt := FromEnv()
	if opt.Level != "info" || opt.Format != "console" || opt.Service != "muzzle" {
		t.Fatalf("defaults = %+v", opt)
	}
}

func TestNew_IndependentOfRoot(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{
		Level:        "warn",
		Format:       "json",
		Service:      "muzzle-api",
		Writer:       &buf,
		StaticFields: map[string]string{"component": "verdicts", "region": ""},
	})
	l.Info().Msg("dropped")
	l.Warn().Msg("kept")

	out := buf.String()
	if bytes.Contains(buf.Bytes(), []byte("dropped")) {
		t.Fatalf("info line passed a warn logger: %s", out)
	}
	kit.MustContain(t, out, `"component":"verdicts"`)
	kit.MustContain(t, out, `"service":"muzzle-api"`)
	if bytes.Contains(buf.Bytes(), []byte("region")) {
		t.Fatalf("blank static field written: %s", out)
	}

	buf.Reset()
	off := New(Options{Level: "off", Format: "json", Writer: &buf})
	off.Error().Msg("nothing")
	if buf.Len() != 0 {
		t.Fatalf("disabled logger wrote %q", buf.String())
	}
}
