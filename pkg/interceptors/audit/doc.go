// Package audit records intercepted invocations as durable audit entries.
//
// # Overview
//
// The Recorder is advice: registered on a proxy configuration, it writes one
// Record per call (method, duration, outcome) to a Store. Two stores ship
// with the package: SQLiteStore for durable records and MemoryStore for
// tests. Recording is best-effort — a failing store logs an error and the
// intercepted call proceeds unchanged.
//
//	store, err := audit.NewSQLiteStore(&cfg.Audit.SQLite)
//	if err != nil {
//	    ...
//	}
//	defer store.Close()
//	proxyCfg.AddInterceptor(audit.NewRecorder(store))
//
// Argument and result values are never persisted, only their count; audit
// entries must not leak call payloads.
//
// # Retention
//
// The Pruner deletes records past the retention window; the Scheduler runs
// it on a cron schedule:
//
//	sched := audit.NewScheduler(store, &cfg.Audit.Retention)
//	if err := sched.Start(ctx); err != nil {
//	    ...
//	}
package audit
