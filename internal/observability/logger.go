package observability

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger returns the JSON logger every binary uses. Records carry trace_id
// and span_id when a span is active on the context, and request_id while serving a request.
func NewLogger(env string) *slog.Logger {
	return newLogger(os.Stdout, env)
}

func newLogger(w io.Writer, env string) *slog.Logger {
	level := slog.LevelInfo

	if env == "dev" {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(NewTraceHandler(handler))
}
