package ai

import (
	"strings"
	"testing"

	"github.com/doeshing/ask-go/internal/domain"
)

var testInfo = domain.SystemInfo{OS: "Linux", User: "alex", Shell: "bash"}

func TestSinglePromptIncludesEnvironmentAndQuery(t *testing.T) {
	builder, err := NewTemplateBuilder()
	if err != nil {
		t.Fatalf("NewTemplateBuilder error: %v", err)
	}
	prompt, err := builder.Single(testInfo, "list all files")
	if err != nil {
		t.Fatalf("Single error: %v", err)
	}
	for _, want := range []string{
		"System: Linux",
		"alex: list all files",
		domain.OutOfContextReply,
		domain.CommandMarker + " ls -la",
		domain.WarningMarker + " permanently deletes all files and folders",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("single prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestContextualPromptEmbedsConversationBlock(t *testing.T) {
	builder, err := NewTemplateBuilder()
	if err != nil {
		t.Fatalf("NewTemplateBuilder error: %v", err)
	}
	block := "Previous conversation:\n1. User: list files\n   Command: ls -la ✓\nCurrent query:"
	prompt, err := builder.Contextual(testInfo, block, "only the biggest ones")
	if err != nil {
		t.Fatalf("Contextual error: %v", err)
	}
	if !strings.Contains(prompt, block) {
		t.Fatalf("contextual prompt missing conversation block:\n%s", prompt)
	}
	if !strings.Contains(prompt, "FOLLOW-UP") {
		t.Fatal("contextual prompt missing follow-up rule")
	}
	if !strings.Contains(prompt, "alex: only the biggest ones") {
		t.Fatal("contextual prompt missing current query")
	}
}

func TestContextualPromptFallsBackOnEmptyBlock(t *testing.T) {
	builder, err := NewTemplateBuilder()
	if err != nil {
		t.Fatalf("NewTemplateBuilder error: %v", err)
	}
	single, err := builder.Single(testInfo, "check disk space")
	if err != nil {
		t.Fatalf("Single error: %v", err)
	}
	contextual, err := builder.Contextual(testInfo, "   ", "check disk space")
	if err != nil {
		t.Fatalf("Contextual error: %v", err)
	}
	if single != contextual {
		t.Fatal("empty context block did not fall back to the single-turn prompt")
	}
}
