package interceptors

import (
	"log/slog"
	"time"

	"mercator-hq/callisto/pkg/advice"
)

// Logging is advice that logs every intercepted invocation with its method,
// duration, and outcome. Successful calls log at debug level, failed calls
// at error level.
type Logging struct {
	logger *slog.Logger
}

// NewLogging creates logging advice. If logger is nil, slog.Default is used
// with a component attribute.
func NewLogging(logger *slog.Logger) *Logging {
	if logger == nil {
		logger = slog.Default().With("component", "interceptors.logging")
	}
	return &Logging{logger: logger}
}

// Invoke implements advice.Interceptor.
func (l *Logging) Invoke(inv advice.Invocation) ([]any, error) {
	m := inv.Method()
	start := time.Now()

	results, err := inv.Proceed()

	elapsed := time.Since(start)
	if err != nil {
		l.logger.Error("invocation failed",
			"method", m.String(),
			"duration", elapsed,
			"error", err,
		)
		return results, err
	}

	l.logger.Debug("invocation completed",
		"method", m.String(),
		"duration", elapsed,
		"results", len(results),
	)
	return results, nil
}
