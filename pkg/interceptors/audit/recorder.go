package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"mercator-hq/callisto/pkg/advice"
)

// Recorder is advice that writes one audit record per intercepted
// invocation. Recording is best-effort: a store failure is logged and the
// call proceeds unchanged, so audit problems never turn into application
// failures.
type Recorder struct {
	store   Store
	logger  *slog.Logger
	timeout time.Duration
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithRecorderLogger sets the logger used for store failures.
func WithRecorderLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) { r.logger = logger }
}

// WithStoreTimeout bounds each store write (default 5s).
func WithStoreTimeout(d time.Duration) RecorderOption {
	return func(r *Recorder) { r.timeout = d }
}

// NewRecorder creates audit-recording advice backed by the given store.
func NewRecorder(store Store, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		store:   store,
		logger:  slog.Default().With("component", "audit.recorder"),
		timeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Invoke implements advice.Interceptor.
func (r *Recorder) Invoke(inv advice.Invocation) ([]any, error) {
	m := inv.Method()
	start := time.Now()

	results, err := inv.Proceed()

	record := &Record{
		ID:       uuid.NewString(),
		Time:     start,
		Method:   m.Name,
		ArgCount: len(inv.Args()),
		Duration: time.Since(start),
		Outcome:  "success",
	}
	if m.Owner != nil {
		record.Owner = m.Owner.String()
	}
	if err != nil {
		record.Outcome = "error"
		record.Error = err.Error()
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if saveErr := r.store.Save(ctx, record); saveErr != nil {
		r.logger.Error("failed to save audit record",
			"method", m.String(),
			"error", saveErr,
		)
	}

	return results, err
}
