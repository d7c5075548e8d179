package domain

import "errors"

// Sentinel errors for the failure boundaries of a scan. Callers check
// them with errors.Is.
var (
	// ErrInvalidTarget marks a target URL missing its scheme or host.
	// It is the only error allowed to abort a whole scan call.
	ErrInvalidTarget = errors.New("invalid target URL")

	// ErrTransport marks a request that exhausted its retries on
	// connection-level failures.
	ErrTransport = errors.New("transport request failed")

	// ErrPluginExecution marks an uncaught failure inside a plugin run.
	// It is contained at the orchestrator's task boundary.
	ErrPluginExecution = errors.New("plugin execution failed")

	// ErrDiscovery marks a plugin candidate that failed to load during
	// registry discovery. It never aborts discovery of the remaining
	// candidates.
	ErrDiscovery = errors.New("plugin discovery failed")
)
