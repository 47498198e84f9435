package domain

// ExecutionFailure classifies why a command could not be spawned. A
// command that runs and exits non-zero is a normal outcome, not a failure
// of this kind.
type ExecutionFailure int

const (
	// ExecutionSpawnFailure covers unclassified spawn errors
	ExecutionSpawnFailure ExecutionFailure = iota
	// ExecutionEmptyCommand means there was nothing to run
	ExecutionEmptyCommand
	// ExecutionTooLong means the command exceeded MaxCommandLength
	ExecutionTooLong
	// ExecutionNotFound means the command binary does not exist
	ExecutionNotFound
	// ExecutionPermissionDenied means the command could not be started
	// with the current privileges
	ExecutionPermissionDenied
)

// ExecutionError reports a command that never ran.
type ExecutionError struct {
	Kind   ExecutionFailure
	Detail string
	Err    error
}

func (e *ExecutionError) Error() string { return e.Message() }

func (e *ExecutionError) Unwrap() error { return e.Err }

// Message returns the renderable failure line, without the service marker.
func (e *ExecutionError) Message() string {
	switch e.Kind {
	case ExecutionEmptyCommand:
		return "No command to execute."
	case ExecutionTooLong:
		return "Command too long (>1000 chars). Execution cancelled for safety."
	case ExecutionNotFound:
		return "Command not found. Please check if the command is installed and in your PATH."
	case ExecutionPermissionDenied:
		return "Permission denied. You may need to run with appropriate privileges."
	default:
		return "Execution error: " + e.Detail
	}
}

// ExecutionResult reports a command that ran to completion or was
// interrupted after spawning.
type ExecutionResult struct {
	ExitCode    int
	Interrupted bool
	DurationMS  int64
}

// Success reports whether the command completed with exit code zero.
func (r ExecutionResult) Success() bool {
	return !r.Interrupted && r.ExitCode == 0
}
