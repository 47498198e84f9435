package domain

import "strings"

// outOfContextNeedle is the leading phrase of OutOfContextReply, matched
// case-insensitively because models restate the refusal with varying case
// and surrounding prose.
const outOfContextNeedle = "out of context"

// CommandResult is the parsed form of a model response.
type CommandResult struct {
	Command      string
	Note         string
	Warning      string
	Raw          string
	Dangerous    bool
	OutOfContext bool
	ServiceError bool
}

// ParseResponse interprets raw model output. Parsing never fails: a
// response without a command marker degrades to an out-of-context result.
//
// Lines are classified by their leading marker. The first CommandMarker
// line yields the command, the first WarningMarker line flags the command
// as dangerous, and the first unmarked line becomes the note. A response
// beginning with ServiceErrorMarker was produced locally by the generation
// pipeline and passes through untouched.
func ParseResponse(raw string) CommandResult {
	result := CommandResult{Raw: strings.TrimSpace(raw)}
	if strings.HasPrefix(result.Raw, ServiceErrorMarker) {
		result.ServiceError = true
		return result
	}
	if strings.Contains(strings.ToLower(result.Raw), outOfContextNeedle) {
		result.OutOfContext = true
		return result
	}
	if !strings.Contains(result.Raw, CommandMarker) {
		result.OutOfContext = true
		return result
	}

	commandSeen := false
	for _, line := range strings.Split(result.Raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		switch {
		case strings.HasPrefix(trimmed, CommandMarker):
			if !commandSeen {
				commandSeen = true
				result.Command = strings.TrimSpace(strings.TrimPrefix(trimmed, CommandMarker))
			}
		case strings.HasPrefix(trimmed, WarningMarker):
			// Only the first warning line counts.
			if !result.Dangerous {
				result.Dangerous = true
				result.Warning = strings.TrimSpace(strings.TrimPrefix(trimmed, WarningMarker))
			}
		case result.Note == "" && commandSeen:
			result.Note = trimmed
		}
	}
	return result
}

// RefusalText returns the line to display for an out-of-context result.
// The model's own wording is kept when it issued the refusal itself;
// otherwise the canonical refusal is rendered as a service line.
func (r CommandResult) RefusalText() string {
	if strings.Contains(strings.ToLower(r.Raw), outOfContextNeedle) {
		return r.Raw
	}
	return ServiceErrorMarker + " " + OutOfContextReply
}
