package importer

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// recordingReporter captures warnings and errors in order.
type recordingReporter struct {
	mu       sync.Mutex
	warnings []string
	errors   []string
	causes   []error
}

func (r *recordingReporter) Warn(_ context.Context, msg string, _ ...slog.Attr) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, msg)
}

func (r *recordingReporter) Error(_ context.Context, msg string, err error, _ ...slog.Attr) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
	r.causes = append(r.causes, err)
}
