package domain

import "context"

// QueryRequest captures user intent originating from the CLI.
type QueryRequest struct {
	Context context.Context
	Query   string
	Execute bool
	Force   bool
}

// QueryReport summarizes a completed one-shot pipeline.
type QueryReport struct {
	Result    CommandResult
	Decision  Decision
	Execution *ExecutionResult
}

// Decision is the outcome of a confirmation prompt.
type Decision int

const (
	// Declined means the user answered no, or input was cancelled
	Declined Decision = iota
	// Confirmed means the user answered yes
	Confirmed
	// Aborted means re-prompting was exhausted without a usable answer
	Aborted
)
