package sysinfo

import (
	"runtime"
	"testing"

	"github.com/doeshing/ask-go/internal/domain"
)

func TestCollectMapsOSName(t *testing.T) {
	info := NewCollector().Collect()
	if info.OS != domain.OSDisplayName(runtime.GOOS) {
		t.Fatalf("OS = %q, want %q", info.OS, domain.OSDisplayName(runtime.GOOS))
	}
	if info.User == "" {
		t.Fatal("expected a username fallback")
	}
}

func TestCollectUsesShellBasename(t *testing.T) {
	t.Setenv("SHELL", "/usr/local/bin/zsh")
	info := NewCollector().Collect()
	if info.Shell != "zsh" {
		t.Fatalf("Shell = %q, want %q", info.Shell, "zsh")
	}
}

func TestCollectShellFallback(t *testing.T) {
	t.Setenv("SHELL", "")
	info := NewCollector().Collect()
	if info.Shell != "sh" {
		t.Fatalf("Shell = %q, want %q", info.Shell, "sh")
	}
}
