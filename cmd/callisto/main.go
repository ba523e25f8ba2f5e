// Callisto is a method-interception proxy engine for Go services.
//
// It wraps ordinary Go values in dynamic proxies that route method calls
// through configurable interceptor chains, with pluggable target sources,
// audit recording, and telemetry.
//
// Usage:
//
//	# Show version information
//	callisto version
//
//	# Validate a configuration file
//	callisto validate --config /path/to/config.yaml
//
//	# Query the audit database
//	callisto audit list --method Greet --outcome error
//
//	# Prune old audit records
//	callisto audit prune --older-than 30
//
// For complete documentation, see: https://github.com/mercator-hq/callisto
package main

func main() {
	Execute()
}
