package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// SingleTurnPromptTemplate is the instruction template for one-shot queries.
//
//go:embed defaults/prompt_single.tmpl
var SingleTurnPromptTemplate string

// ContextualPromptTemplate is the instruction template for follow-up
// queries carrying a conversation block.
//
//go:embed defaults/prompt_context.tmpl
var ContextualPromptTemplate string
