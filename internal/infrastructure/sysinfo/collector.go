package sysinfo

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"

	"github.com/doeshing/ask-go/internal/domain"
	"github.com/doeshing/ask-go/internal/ports"
)

// Collector reads the environment facts used to ground prompts.
type Collector struct{}

func NewCollector() *Collector { return &Collector{} }

// Collect implements ports.SystemInfoCollector. Every field has a
// fallback so prompt construction never fails on a strange environment.
func (c *Collector) Collect() domain.SystemInfo {
	return domain.SystemInfo{
		OS:    domain.OSDisplayName(runtime.GOOS),
		User:  username(),
		Shell: shellName(),
	}
}

func username() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "user"
}

func shellName() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return filepath.Base(shell)
	}
	return "sh"
}

var _ ports.SystemInfoCollector = (*Collector)(nil)
