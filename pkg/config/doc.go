// Package config provides configuration loading, defaults, validation, and
// hot reload for the Callisto engine.
//
// # Overview
//
// Configuration lives in a single YAML file with four sections: proxy
// (engine-wide proxy creation defaults), validation (target-class
// diagnostics), audit (invocation evidence recording and retention), and
// telemetry (logging, metrics, tracing). Every field has a documented
// default; a missing file section simply keeps the defaults.
//
// Loading follows a fixed sequence: YAML is unmarshalled over DefaultConfig,
// CALLISTO_SECTION_FIELD environment variables override file values, and the
// result is validated as a whole. Validation collects every failing field
// into one ValidationError rather than stopping at the first.
//
//	cfg, err := config.LoadWithEnvOverrides("callisto.yaml")
//	if err != nil {
//	    ...
//	}
//
// # Hot reload
//
// Watcher observes the configuration file through fsnotify and delivers each
// successfully reloaded configuration to a callback. Reloads that fail
// validation are dropped with an error log, so a broken edit never replaces
// a working configuration.
package config
