package ai

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/doeshing/ask-go/assets"
	"github.com/doeshing/ask-go/internal/domain"
	"github.com/doeshing/ask-go/internal/ports"
)

// templateData feeds the embedded prompt templates. Marker fields come
// from domain constants so the rendered rules can never drift from what
// the parser expects.
type templateData struct {
	OS            string
	User          string
	Query         string
	Context       string
	CommandMarker string
	WarningMarker string
	Refusal       string
}

// TemplateBuilder renders model prompts from the embedded templates.
type TemplateBuilder struct {
	single     *template.Template
	contextual *template.Template
}

// NewTemplateBuilder parses the embedded templates once.
func NewTemplateBuilder() (*TemplateBuilder, error) {
	single, err := template.New("single").Parse(assets.SingleTurnPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse single-turn template: %w", err)
	}
	contextual, err := template.New("contextual").Parse(assets.ContextualPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse contextual template: %w", err)
	}
	return &TemplateBuilder{single: single, contextual: contextual}, nil
}

// Single renders the one-shot prompt.
func (b *TemplateBuilder) Single(info domain.SystemInfo, query string) (string, error) {
	return render(b.single, newTemplateData(info, query, ""))
}

// Contextual renders the follow-up prompt. An empty context block falls
// back to the single-turn variant.
func (b *TemplateBuilder) Contextual(info domain.SystemInfo, contextBlock, query string) (string, error) {
	if strings.TrimSpace(contextBlock) == "" {
		return b.Single(info, query)
	}
	return render(b.contextual, newTemplateData(info, query, contextBlock))
}

func newTemplateData(info domain.SystemInfo, query, contextBlock string) templateData {
	return templateData{
		OS:            info.OS,
		User:          info.User,
		Query:         query,
		Context:       contextBlock,
		CommandMarker: domain.CommandMarker,
		WarningMarker: domain.WarningMarker,
		Refusal:       domain.OutOfContextReply,
	}
}

func render(tmpl *template.Template, data templateData) (string, error) {
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

var _ ports.PromptBuilder = (*TemplateBuilder)(nil)
