package domain

import "time"

// Response protocol markers shared by the prompt builder and the parser.
// They must stay in sync with the rules and examples in the embedded
// prompt templates.
const (
	// CommandMarker prefixes the command line in a model response
	CommandMarker = "→"
	// WarningMarker prefixes a hazard warning line in a model response
	WarningMarker = "⚠️"
	// ServiceErrorMarker prefixes locally generated failure lines
	ServiceErrorMarker = "➜"
	// OutOfContextReply is the fixed refusal sentence for non-command requests
	OutOfContextReply = "Out of context - this is not a terminal command request"
)

// Model configuration constants
const (
	// DefaultModel is the hosted model used when config does not override it
	DefaultModel = "gemini-2.0-flash-exp"
	// DefaultTemperature keeps responses near-deterministic
	DefaultTemperature = 0.1
	// DefaultMaxOutputTokens bounds a generated response
	DefaultMaxOutputTokens = 150
	// ProbePrompt is sent during setup to validate an API key
	ProbePrompt = "respond with ok"
	// ProbeMaxTokens bounds the setup validation response
	ProbeMaxTokens = 10
	// APIKeyURL is where users create a key during setup
	APIKeyURL = "https://makersuite.google.com/app/apikey"
)

// Retry constants
const (
	// MaxGenerationAttempts is the number of model calls before giving up
	MaxGenerationAttempts = 3
	// InitialRetryDelay is the first backoff delay, doubled on each retry
	InitialRetryDelay = time.Second
	// DefaultHTTPClientTimeout is the timeout for HTTP client requests
	DefaultHTTPClientTimeout = 60 * time.Second
)

// Interaction limit constants
const (
	// MaxConfirmationAttempts bounds re-prompting on unrecognized answers
	MaxConfirmationAttempts = 3
	// MaxSetupAttempts bounds API key entry during setup
	MaxSetupAttempts = 5
	// MinAPIKeyLength rejects obviously truncated keys before probing
	MinAPIKeyLength = 10
	// MaxCommandLength is the longest command the executor will spawn
	MaxCommandLength = 1000
	// TerminationGrace is how long a cancelled process may exit cleanly
	// before it is killed
	TerminationGrace = 5 * time.Second
)

// Conversation context constants
const (
	// DefaultContextLimit is the default conversation capacity
	DefaultContextLimit = 5
	// MinContextLimit is the smallest allowed conversation capacity
	MinContextLimit = 1
	// MaxContextLimit is the largest allowed conversation capacity
	MaxContextLimit = 20
)

// History constants
const (
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
)

// File permissions constants
const (
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)

// osDisplayNames maps runtime.GOOS values to the names used in prompts.
var osDisplayNames = map[string]string{
	"darwin":  "macOS",
	"linux":   "Linux",
	"windows": "Windows",
}

// OSDisplayName returns the prompt-facing name for a GOOS value, falling
// back to the raw value for platforms without a mapping.
func OSDisplayName(goos string) string {
	if name, ok := osDisplayNames[goos]; ok {
		return name
	}
	return goos
}
