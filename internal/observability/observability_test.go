package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestClassifyDBErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unique", &pgconn.PgError{Code: "23505"}, "unique_violation"},
		{"other_pg_code", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "22001"}), "pg_22001"},
		{"deadline", context.DeadlineExceeded, "timeout"},
		{"refused", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), "connection"},
		{"unknown", errors.New("boom"), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyDBErr(tt.err); got != tt.want {
				t.Fatalf("ClassifyDBErr(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestPromCounters(t *testing.T) {
	p := NewProm(prometheus.NewRegistry())

	p.ObserveContentRead("projects", "fallback")
	p.ObserveContentRead("projects", "fallback")
	p.ObserveUpload("resume", "stored")
	p.ObserveLogin(false)

	if got := testutil.ToFloat64(p.ContentReads.WithLabelValues("projects", "fallback")); got != 2 {
		t.Fatalf("content reads = %v, want 2", got)
	}
	if got := testutil.ToFloat64(p.Uploads.WithLabelValues("resume", "stored")); got != 1 {
		t.Fatalf("uploads = %v, want 1", got)
	}
	if got := testutil.ToFloat64(p.AdminLogins.WithLabelValues("failure")); got != 1 {
		t.Fatalf("failed logins = %v, want 1", got)
	}

	err := p.ObserveDB("content.list_projects", func() error { return errors.New("boom") })
	if err == nil {
		t.Fatalf("ObserveDB must return fn's error")
	}
	if got := testutil.ToFloat64(p.DbErrorsTotal.WithLabelValues("content.list_projects", "unknown")); got != 1 {
		t.Fatalf("db errors = %v, want 1", got)
	}
}

func TestNilPromIsSafe(t *testing.T) {
	var p *Prom

	p.ObserveContentRead("projects", "store")
	p.ObserveUpload("cert_image", "rejected")
	p.ObserveLogin(true)

	called := false
	if err := p.ObserveDB("op", func() error { called = true; return nil }); err != nil || !called {
		t.Fatalf("nil Prom should still run fn")
	}
}

func TestLoggerAddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "dev")

	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	log.InfoContext(ctx, "inside span")
	span.End()

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if rec["trace_id"] != span.SpanContext().TraceID().String() {
		t.Fatalf("missing trace_id in %v", rec)
	}

	buf.Reset()
	log.Info("no span")
	if bytes.Contains(buf.Bytes(), []byte("trace_id")) {
		t.Fatalf("trace_id should be absent without a span: %s", buf.String())
	}
}

func TestLoggerAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "prod")

	ctx := WithRequestID(context.Background(), "req-42")
	log.WarnContext(ctx, "store unreachable", "section", "projects")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if rec["request_id"] != "req-42" || rec["section"] != "projects" {
		t.Fatalf("unexpected record %v", rec)
	}
}
