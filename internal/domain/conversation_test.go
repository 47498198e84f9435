package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewConversationContextClampsLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero", 0, MinContextLimit},
		{"negative", -3, MinContextLimit},
		{"in range", 7, 7},
		{"above max", 50, MaxContextLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewConversationContext(tt.limit)
			if ctx.Limit() != tt.want {
				t.Fatalf("Limit() = %d, want %d", ctx.Limit(), tt.want)
			}
		})
	}
}

func TestConversationContextEvictsOldest(t *testing.T) {
	ctx := NewConversationContext(2)
	ctx.Add("first", "ls", false)
	ctx.Add("second", "pwd", false)
	ctx.Add("third", "df -h", true)

	if ctx.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ctx.Len())
	}
	var queries []string
	for _, entry := range ctx.Entries() {
		queries = append(queries, entry.Query)
	}
	if diff := cmp.Diff([]string{"second", "third"}, queries); diff != "" {
		t.Fatalf("retained queries mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkLastExecutionOnEmptyContext(t *testing.T) {
	ctx := NewConversationContext(5)
	if ctx.MarkLastExecution(true, true) {
		t.Fatal("expected false on empty context")
	}
}

func TestMarkLastExecutionUpdatesNewestEntry(t *testing.T) {
	ctx := NewConversationContext(5)
	ctx.Add("list files", "ls -la", false)
	if !ctx.MarkLastExecution(true, true) {
		t.Fatal("expected update to succeed")
	}
	last, ok := ctx.Last()
	if !ok {
		t.Fatal("expected a last entry")
	}
	if !last.Executed || !last.Succeeded {
		t.Fatalf("entry not updated: %+v", last)
	}
}

func TestPromptBlockEmptyContext(t *testing.T) {
	ctx := NewConversationContext(5)
	if block := ctx.PromptBlock(); block != "" {
		t.Fatalf("PromptBlock() = %q, want empty", block)
	}
}

func TestPromptBlockFormat(t *testing.T) {
	ctx := NewConversationContext(5)
	ctx.Add("list files", "ls -la", true)
	ctx.Add("show disk space", "df -h", false)

	want := "Previous conversation:\n" +
		"1. User: list files\n" +
		"   Command: ls -la ✓\n" +
		"2. User: show disk space\n" +
		"   Command: df -h ○\n" +
		"Current query:"
	if diff := cmp.Diff(want, ctx.PromptBlock()); diff != "" {
		t.Fatalf("PromptBlock() mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryLines(t *testing.T) {
	ctx := NewConversationContext(5)
	if got := ctx.HistoryLines(); got != "No history." {
		t.Fatalf("HistoryLines() = %q, want %q", got, "No history.")
	}
	ctx.Add("list files", "ls -la", false)
	want := "1. list files\n   → ls -la"
	if got := ctx.HistoryLines(); got != want {
		t.Fatalf("HistoryLines() = %q, want %q", got, want)
	}
}

func TestSummaryCountsExecuted(t *testing.T) {
	ctx := NewConversationContext(5)
	ctx.Add("a", "ls", true)
	ctx.Add("b", "pwd", false)
	want := "📊 Context: 2/5 queries, 1 executed"
	if got := ctx.Summary(); got != want {
		t.Fatalf("Summary() = %q, want %q", got, want)
	}
}

func TestClearDropsEntries(t *testing.T) {
	ctx := NewConversationContext(5)
	ctx.Add("a", "ls", false)
	ctx.Clear()
	if ctx.Len() != 0 {
		t.Fatalf("Len() = %d after Clear, want 0", ctx.Len())
	}
	if _, ok := ctx.Last(); ok {
		t.Fatal("Last() returned an entry after Clear")
	}
}
