// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). Following the Ports and Adapters (Hexagonal) pattern,
// these interfaces allow the application to remain independent of specific
// implementations like AI providers, storage backends, or CLI frameworks.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., ModelProvider, ConfigStore)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"
	"io"

	"github.com/doeshing/ask-go/internal/domain"
)

// ConfigStore loads and persists the configuration file.
// Implementations typically read from ~/.ask/config.yaml.
type ConfigStore interface {
	Load(context.Context) (domain.Config, error)
	Save(domain.Config) error
	Delete() error
	Path() string
}

// SystemInfoCollector gathers the environment facts injected into prompts:
// operating system, username and shell.
type SystemInfoCollector interface {
	Collect() domain.SystemInfo
}

// PromptBuilder renders the instruction prompt sent to the model. The
// contextual variant embeds a conversation block produced by
// domain.ConversationContext.PromptBlock.
type PromptBuilder interface {
	Single(info domain.SystemInfo, query string) (string, error)
	Contextual(info domain.SystemInfo, contextBlock, query string) (string, error)
}

// ModelProvider calls the hosted model. Generate owns its retry policy and
// returns either response text or a *domain.GenerationError describing why
// no text could be produced. Probe validates connectivity with a minimal
// request during setup.
type ModelProvider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Probe(ctx context.Context) error
}

// CommandRunner executes a shell command, streaming combined output to the
// writer line by line as it is produced. Commands that run and exit
// non-zero report their code in the result; only spawn-level problems
// surface as *domain.ExecutionError.
type CommandRunner interface {
	Run(ctx context.Context, command string, out io.Writer) (domain.ExecutionResult, error)
}

// ConfirmationPrompter asks the user whether a generated command should
// run. Dangerous commands get a sterner prompt with the model's warning.
type ConfirmationPrompter interface {
	Confirm(result domain.CommandResult) domain.Decision
}

// LineReader reads one line of user input for interactive flows. An EOF or
// interrupt surfaces as an error so sessions can shut down cleanly.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// ProgressIndicator shows activity while a model call is in flight. Stop
// must wait for the indicator to release the terminal before returning.
type ProgressIndicator interface {
	Start(message string)
	Stop()
}

// HistoryStore persists generated commands and their outcomes.
type HistoryStore interface {
	Save(domain.HistoryRecord) error
	Records(limit int, search string) ([]domain.HistoryRecord, error)
	Clear() error
	ExportJSON(dest string) error
	Stats() (domain.HistoryStats, error)
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
