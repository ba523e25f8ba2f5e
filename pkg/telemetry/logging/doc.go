// Package logging builds structured slog loggers from configuration.
//
// # Overview
//
// The logging package translates the telemetry.logging configuration
// section into a ready-to-use *slog.Logger with the requested level and
// output format (JSON or text). Proxy internals log through slog, so the
// logger produced here becomes the process default:
//
//	logger, err := logging.New(&cfg.Telemetry.Logging, logging.Options{})
//	if err != nil {
//		return err
//	}
//	slog.SetDefault(logger)
//
// Invocation audit records never carry argument or result values, so log
// output contains method names and timings only.
package logging
