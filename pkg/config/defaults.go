package config

// Default values for configuration fields.
const (
	// Audit defaults
	DefaultAuditBackend       = "sqlite"
	DefaultAuditSQLitePath    = "data/audit.db"
	DefaultAuditBusyTimeoutMS = 5000
	DefaultRetentionDays      = 30
	DefaultRetentionSchedule  = "0 3 * * *"

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "json"
	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "callisto"
	DefaultMetricsSubsystem = "proxy"
	DefaultMetricsPath      = "/metrics"
	DefaultTracingEnabled   = false
	DefaultTracingEndpoint  = "localhost:4317"
	DefaultTracingInsecure  = true
	DefaultTracingService   = "callisto"
	DefaultTracingRatio     = 1.0

	// Validation defaults
	DefaultValidationEnabled = true
)

// DefaultInvocationDurationBuckets covers reflective dispatch latencies:
// a direct-slot call lands in the low microseconds, a deep advised chain
// with slow advice reaches into the tens of milliseconds.
func DefaultInvocationDurationBuckets() []float64 {
	return []float64{0.000001, 0.000005, 0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.01, 0.1}
}

// DefaultChainDepthBuckets covers interceptor chain depths per invocation.
func DefaultChainDepthBuckets() []float64 {
	return []float64{1, 2, 3, 5, 8, 13, 21}
}

// DefaultConfig returns a fully populated configuration with every field at
// its documented default. Load unmarshals YAML over this value, so a file
// only has to name the fields it changes and explicit false values survive.
func DefaultConfig() *Config {
	return &Config{
		Validation: ValidationConfig{
			Enabled: DefaultValidationEnabled,
		},
		Audit: AuditConfig{
			Backend: DefaultAuditBackend,
			SQLite: SQLiteConfig{
				Path:          DefaultAuditSQLitePath,
				BusyTimeoutMS: DefaultAuditBusyTimeoutMS,
			},
			Retention: RetentionConfig{
				Days:     DefaultRetentionDays,
				Schedule: DefaultRetentionSchedule,
			},
		},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{
				Level:  DefaultLoggingLevel,
				Format: DefaultLoggingFormat,
			},
			Metrics: MetricsConfig{
				Enabled:                   DefaultMetricsEnabled,
				Namespace:                 DefaultMetricsNamespace,
				Subsystem:                 DefaultMetricsSubsystem,
				Path:                      DefaultMetricsPath,
				InvocationDurationBuckets: DefaultInvocationDurationBuckets(),
				ChainDepthBuckets:         DefaultChainDepthBuckets(),
			},
			Tracing: TracingConfig{
				Enabled:     DefaultTracingEnabled,
				Endpoint:    DefaultTracingEndpoint,
				Insecure:    DefaultTracingInsecure,
				ServiceName: DefaultTracingService,
				SampleRatio: DefaultTracingRatio,
			},
		},
	}
}

// ApplyDefaults fills zero-valued string, numeric, and slice fields with
// their documented defaults. Boolean fields keep their current value; use
// DefaultConfig as the base when default-true booleans matter.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Audit defaults
	if cfg.Audit.Backend == "" {
		cfg.Audit.Backend = DefaultAuditBackend
	}
	if cfg.Audit.SQLite.Path == "" {
		cfg.Audit.SQLite.Path = DefaultAuditSQLitePath
	}
	if cfg.Audit.SQLite.BusyTimeoutMS == 0 {
		cfg.Audit.SQLite.BusyTimeoutMS = DefaultAuditBusyTimeoutMS
	}
	if cfg.Audit.Retention.Days == 0 {
		cfg.Audit.Retention.Days = DefaultRetentionDays
	}
	if cfg.Audit.Retention.Schedule == "" {
		cfg.Audit.Retention.Schedule = DefaultRetentionSchedule
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if len(cfg.Telemetry.Metrics.InvocationDurationBuckets) == 0 {
		cfg.Telemetry.Metrics.InvocationDurationBuckets = DefaultInvocationDurationBuckets()
	}
	if len(cfg.Telemetry.Metrics.ChainDepthBuckets) == 0 {
		cfg.Telemetry.Metrics.ChainDepthBuckets = DefaultChainDepthBuckets()
	}
	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingService
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingRatio
	}

	// Proxy flag defaults are false (zero values), which is correct.
}
