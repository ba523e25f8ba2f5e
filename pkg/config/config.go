package config

// Config is the root configuration structure for Callisto. It carries the
// engine-wide proxy defaults, target-class validation settings, the audit
// subsystem, and telemetry. All sections are optional in the YAML file;
// ApplyDefaults fills the gaps.
type Config struct {
	// Proxy contains default flags applied to new proxy configurations
	// created through a factory built with proxy.NewFactoryFromConfig.
	Proxy ProxyConfig `yaml:"proxy"`

	// Validation contains target-class validation settings.
	Validation ValidationConfig `yaml:"validation"`

	// Audit contains configuration for invocation audit recording,
	// storage backend selection, and retention.
	Audit AuditConfig `yaml:"audit"`

	// Telemetry contains configuration for observability including logging,
	// metrics, and distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ProxyConfig contains engine-wide proxy creation defaults. Each field maps
// to the corresponding flag on a proxy configuration.
type ProxyConfig struct {
	// Optimize enables eager method prebinding for static targets.
	// Default: false
	Optimize bool `yaml:"optimize"`

	// Opaque hides the administrative surface from synthesized proxies.
	// Default: false
	Opaque bool `yaml:"opaque"`

	// ExposeProxy publishes the proxy in the goroutine-scoped call context
	// for the duration of each advised invocation.
	// Default: false
	ExposeProxy bool `yaml:"expose_proxy"`

	// Freeze freezes proxy configurations immediately after defaults are
	// applied, rejecting later advice mutation.
	// Default: false
	Freeze bool `yaml:"freeze"`
}

// ValidationConfig contains target-class validation settings.
type ValidationConfig struct {
	// Enabled controls whether concrete target classes are inspected for
	// methods that will bypass advice. Findings are logged at warn level.
	// Default: true
	Enabled bool `yaml:"enabled"`
}

// AuditConfig contains configuration for invocation audit recording.
type AuditConfig struct {
	// Enabled controls whether audit records are written at all.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Backend selects the audit store implementation.
	// Options: "sqlite", "memory"
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite contains settings for the SQLite audit store.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Retention contains settings for audit record retention and pruning.
	Retention RetentionConfig `yaml:"retention"`
}

// SQLiteConfig contains settings for the SQLite audit store.
type SQLiteConfig struct {
	// Path is the filesystem path of the database file. The special value
	// ":memory:" keeps the store in memory.
	// Default: "data/audit.db"
	Path string `yaml:"path"`

	// BusyTimeoutMS is the SQLite busy timeout in milliseconds.
	// Default: 5000
	BusyTimeoutMS int `yaml:"busy_timeout_ms"`
}

// RetentionConfig contains settings for audit record retention.
type RetentionConfig struct {
	// Days is the number of days to keep audit records. Zero disables
	// scheduled pruning.
	// Default: 30
	Days int `yaml:"days"`

	// Schedule is the cron expression for the pruning job.
	// Default: "0 3 * * *" (daily at 03:00)
	Schedule string `yaml:"schedule"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains OpenTelemetry tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format selects the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are recorded.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name namespace prefix.
	// Default: "callisto"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric name subsystem prefix.
	// Default: "proxy"
	Subsystem string `yaml:"subsystem"`

	// Path is the HTTP path for the metrics endpoint when one is mounted.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// InvocationDurationBuckets are the histogram buckets, in seconds, for
	// invocation duration. Reflective dispatch is microseconds, advised
	// chains reach milliseconds.
	// Default: 1µs .. 100ms exponential
	InvocationDurationBuckets []float64 `yaml:"invocation_duration_buckets"`

	// ChainDepthBuckets are the histogram buckets for interceptor chain
	// depth per advised invocation.
	// Default: [1, 2, 3, 5, 8, 13, 21]
	ChainDepthBuckets []float64 `yaml:"chain_depth_buckets"`
}

// TracingConfig contains OpenTelemetry tracing configuration.
type TracingConfig struct {
	// Enabled controls whether traces are exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS on the OTLP connection.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// ServiceName is the service.name resource attribute.
	// Default: "callisto"
	ServiceName string `yaml:"service_name"`

	// SampleRatio is the trace sampling ratio in [0, 1].
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`
}
