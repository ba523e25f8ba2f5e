package audit

import (
	"fmt"
	"time"
)

// Record is one audit entry describing a single intercepted invocation.
type Record struct {
	// ID is the unique record identifier (UUID).
	ID string

	// Time is when the invocation started.
	Time time.Time

	// Method is the name of the invoked method.
	Method string

	// Owner is the type that declared the method, empty when unknown.
	Owner string

	// ArgCount is the number of arguments the call carried. Argument values
	// are deliberately not recorded; audit entries must not leak payloads.
	ArgCount int

	// Duration is the wall time of the invocation including downstream advice.
	Duration time.Duration

	// Outcome is "success" or "error".
	Outcome string

	// Error is the error text for failed invocations, empty otherwise.
	Error string
}

// Filter selects audit records for queries and counts. Zero-valued fields
// are ignored.
type Filter struct {
	// Method filters by exact method name.
	Method string

	// Outcome filters by outcome ("success" or "error").
	Outcome string

	// Since selects records at or after this time.
	Since time.Time

	// Until selects records at or before this time.
	Until time.Time

	// Limit caps the number of returned records. Zero means the store
	// default (100).
	Limit int
}

// StorageError describes a failure in an audit store operation.
type StorageError struct {
	Backend string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("audit storage %s: %s: %v", e.Backend, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
