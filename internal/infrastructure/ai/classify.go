package ai

import (
	"strings"

	"github.com/doeshing/ask-go/internal/domain"
)

// classifyFailure maps raw provider error text onto a failure kind. The
// Gemini API does not expose stable machine-readable codes for every
// failure mode, so this is a lowercase substring scan over keyword
// families. Match order matters: auth phrases win over quota phrases,
// which win over transport phrases.
func classifyFailure(err error) domain.GenerationFailure {
	text := strings.ToLower(err.Error())
	switch {
	case containsAny(text, "api key", "authentication", "invalid"):
		return domain.GenerationAuth
	case containsAny(text, "quota", "limit"):
		return domain.GenerationQuota
	case containsAny(text, "network", "connection", "timeout"):
		return domain.GenerationNetwork
	case strings.Contains(text, "rate"):
		return domain.GenerationRateLimited
	default:
		return domain.GenerationUnknown
	}
}

func containsAny(text string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
