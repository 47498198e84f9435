package domain

import (
	"errors"
	"strings"
)

// ErrSetupExhausted reports that the setup wizard ran out of attempts
// without validating a key.
var ErrSetupExhausted = errors.New("setup attempts exhausted")

// Config mirrors ~/.ask/config.yaml.
type Config struct {
	APIKey       string          `yaml:"api_key"`
	Model        string          `yaml:"model"`
	ContextLimit int             `yaml:"context_limit"`
	History      HistorySettings `yaml:"history"`
}

// HistorySettings controls the persistent command history.
type HistorySettings struct {
	Enabled bool `yaml:"enabled"`
	Limit   int  `yaml:"limit"`
}

// Normalize fills unset fields with defaults and clamps bounded values.
func (c *Config) Normalize() {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.ContextLimit == 0 {
		c.ContextLimit = DefaultContextLimit
	}
	if c.ContextLimit < MinContextLimit {
		c.ContextLimit = MinContextLimit
	}
	if c.ContextLimit > MaxContextLimit {
		c.ContextLimit = MaxContextLimit
	}
	if c.History.Limit <= 0 {
		c.History.Limit = DefaultHistoryLimit
	}
}

// Configured reports whether an API key has been stored.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}
