package domain

// GenerationFailure classifies why the model could not produce a response.
type GenerationFailure int

const (
	// GenerationUnknown covers provider errors with no recognized cause
	GenerationUnknown GenerationFailure = iota
	// GenerationAuth means the API key was rejected
	GenerationAuth
	// GenerationQuota means the account's quota is exhausted
	GenerationQuota
	// GenerationRateLimited means the provider asked us to slow down
	GenerationRateLimited
	// GenerationNetwork covers connectivity and timeout failures
	GenerationNetwork
	// GenerationEmpty means the call succeeded but returned no text
	GenerationEmpty
	// GenerationExhausted means every retry attempt failed
	GenerationExhausted
)

// GenerationError is the terminal failure of a generation attempt. It
// carries a user-facing message instead of raw transport detail; the
// underlying error stays attached for logs.
type GenerationError struct {
	Kind   GenerationFailure
	Detail string
	Err    error
}

func (e *GenerationError) Error() string { return e.Message() }

func (e *GenerationError) Unwrap() error { return e.Err }

// Message returns the renderable failure line, without the service marker.
func (e *GenerationError) Message() string {
	switch e.Kind {
	case GenerationAuth:
		return "Invalid API key. Run 'ask reset' to update your API key."
	case GenerationQuota:
		return "API quota exceeded. Please check your Google AI Studio quota or try again later."
	case GenerationNetwork:
		return "Network connection failed. Please check your internet connection and try again."
	case GenerationRateLimited:
		return "Too many requests. Please wait a moment and try again."
	case GenerationEmpty:
		return "AI service returned empty response. Please try again."
	case GenerationExhausted:
		return "Failed to generate command after multiple attempts. Please try again later."
	default:
		return "AI service error: " + e.Detail
	}
}
