package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ConversationEntry records one turn of an interactive session.
type ConversationEntry struct {
	ID        string
	Query     string
	Command   string
	Timestamp time.Time
	Executed  bool
	Succeeded bool
}

// ConversationContext is a bounded FIFO of recent turns. When full, adding
// a turn evicts the oldest one. It backs the contextual prompt variant and
// the in-session history view.
type ConversationContext struct {
	limit   int
	entries []ConversationEntry
}

// NewConversationContext builds an empty context. The limit is clamped to
// [MinContextLimit, MaxContextLimit] regardless of what the caller passes.
func NewConversationContext(limit int) *ConversationContext {
	if limit < MinContextLimit {
		limit = MinContextLimit
	}
	if limit > MaxContextLimit {
		limit = MaxContextLimit
	}
	return &ConversationContext{limit: limit}
}

// Add appends a turn, evicting the oldest entry when the context is full.
// Turns are recorded before any confirmation so that declined commands
// still shape follow-up queries.
func (c *ConversationContext) Add(query, command string, executed bool) {
	entry := ConversationEntry{
		ID:        uuid.NewString(),
		Query:     query,
		Command:   command,
		Timestamp: time.Now(),
		Executed:  executed,
	}
	c.entries = append(c.entries, entry)
	if len(c.entries) > c.limit {
		c.entries = c.entries[len(c.entries)-c.limit:]
	}
}

// Len returns the number of retained turns.
func (c *ConversationContext) Len() int { return len(c.entries) }

// Limit returns the clamped capacity.
func (c *ConversationContext) Limit() int { return c.limit }

// Entries returns a copy of the retained turns, oldest first.
func (c *ConversationContext) Entries() []ConversationEntry {
	out := make([]ConversationEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Last returns the newest turn, if any.
func (c *ConversationContext) Last() (ConversationEntry, bool) {
	if len(c.entries) == 0 {
		return ConversationEntry{}, false
	}
	return c.entries[len(c.entries)-1], true
}

// MarkLastExecution updates the newest turn's execution outcome. It
// reports false when the context is empty.
func (c *ConversationContext) MarkLastExecution(executed, succeeded bool) bool {
	if len(c.entries) == 0 {
		return false
	}
	last := &c.entries[len(c.entries)-1]
	last.Executed = executed
	last.Succeeded = succeeded
	return true
}

// PromptBlock renders the retained turns for the contextual prompt. An
// empty context renders as an empty string, which callers treat as "use
// the single-turn prompt instead".
func (c *ConversationContext) PromptBlock() string {
	if len(c.entries) == 0 {
		return ""
	}
	parts := []string{"Previous conversation:"}
	for i, entry := range c.entries {
		status := "○"
		if entry.Executed {
			status = "✓"
		}
		parts = append(parts, fmt.Sprintf("%d. User: %s", i+1, entry.Query))
		parts = append(parts, fmt.Sprintf("   Command: %s %s", entry.Command, status))
	}
	parts = append(parts, "Current query:")
	return strings.Join(parts, "\n")
}

// HistoryLines renders the in-session history view.
func (c *ConversationContext) HistoryLines() string {
	if len(c.entries) == 0 {
		return "No history."
	}
	var parts []string
	for i, entry := range c.entries {
		parts = append(parts, fmt.Sprintf("%d. %s", i+1, entry.Query))
		parts = append(parts, fmt.Sprintf("   %s %s", CommandMarker, entry.Command))
	}
	return strings.Join(parts, "\n")
}

// Summary renders the one-line context status shown before each prompt.
func (c *ConversationContext) Summary() string {
	executed := 0
	for _, entry := range c.entries {
		if entry.Executed {
			executed++
		}
	}
	return fmt.Sprintf("📊 Context: %d/%d queries, %d executed", len(c.entries), c.limit, executed)
}

// Clear drops all retained turns.
func (c *ConversationContext) Clear() {
	c.entries = nil
}
