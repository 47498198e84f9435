package app

import (
	"context"
	"fmt"
	"io"

	"github.com/doeshing/ask-go/internal/domain"
	"github.com/doeshing/ask-go/internal/infrastructure/ai"
	"github.com/doeshing/ask-go/internal/infrastructure/config"
	"github.com/doeshing/ask-go/internal/infrastructure/history"
	"github.com/doeshing/ask-go/internal/infrastructure/shell"
	"github.com/doeshing/ask-go/internal/infrastructure/sysinfo"
	"github.com/doeshing/ask-go/internal/pkg/logger"
	"github.com/doeshing/ask-go/internal/ports"
	"github.com/doeshing/ask-go/internal/services"
)

// Container wires up application services with infrastructure adapters.
// Interaction adapters (prompter, line reader, progress indicator, output
// writer) belong to the CLI layer; it assigns them after construction.
type Container struct {
	Verbose bool
	Config  domain.Config

	Logger       ports.Logger
	ConfigStore  ports.ConfigStore
	Collector    ports.SystemInfoCollector
	Builder      ports.PromptBuilder
	Provider     ports.ModelProvider
	Runner       ports.CommandRunner
	HistoryStore ports.HistoryStore

	QueryService   *services.QueryService
	SessionService *services.SessionService
	SetupService   *services.SetupService
	DoctorService  *services.DoctorService
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	log := logger.NewStd(verbose)
	store := config.NewFileStore("")

	cfg, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.Normalize()

	builder, err := ai.NewTemplateBuilder()
	if err != nil {
		return nil, fmt.Errorf("parse prompt templates: %w", err)
	}

	c := &Container{
		Verbose:     verbose,
		Config:      cfg,
		Logger:      log,
		ConfigStore: store,
		Collector:   sysinfo.NewCollector(),
		Builder:     builder,
		Runner:      shell.NewRunner(),
	}
	c.Provider = ai.NewGeminiClient(cfg.APIKey, cfg.Model, log)
	if cfg.History.Enabled {
		c.HistoryStore = history.NewStore("", log)
	} else {
		c.HistoryStore = history.NopStore{}
	}

	c.QueryService = &services.QueryService{
		Config:    cfg,
		Collector: c.Collector,
		Builder:   c.Builder,
		Provider:  c.Provider,
		Runner:    c.Runner,
		History:   c.HistoryStore,
		Logger:    log,
	}
	c.SessionService = &services.SessionService{
		Config:    cfg,
		Collector: c.Collector,
		Builder:   c.Builder,
		Provider:  c.Provider,
		Runner:    c.Runner,
		History:   c.HistoryStore,
		Logger:    log,
	}
	c.SetupService = &services.SetupService{
		Store: store,
		Factory: func(apiKey string) ports.ModelProvider {
			return ai.NewGeminiClient(apiKey, c.Config.Model, log)
		},
		Logger: log,
	}
	c.DoctorService = &services.DoctorService{
		Store:    store,
		Provider: c.Provider,
		History:  c.HistoryStore,
		Logger:   log,
	}

	return c, nil
}

// RefreshProvider reloads the configuration and swaps a provider built
// from the current key into every service. Called after the setup wizard
// stores a new key.
func (c *Container) RefreshProvider(ctx context.Context) error {
	cfg, err := c.ConfigStore.Load(ctx)
	if err != nil {
		return fmt.Errorf("reload config: %w", err)
	}
	cfg.Normalize()
	c.Config = cfg
	c.Provider = ai.NewGeminiClient(cfg.APIKey, cfg.Model, c.Logger)

	c.QueryService.Config = cfg
	c.QueryService.Provider = c.Provider
	c.SessionService.Config = cfg
	c.SessionService.Provider = c.Provider
	c.DoctorService.Provider = c.Provider
	return nil
}

// AttachInteraction hands the CLI-owned interaction adapters to the
// services that talk to the user.
func (c *Container) AttachInteraction(prompter ports.ConfirmationPrompter, reader ports.LineReader, progress ports.ProgressIndicator, out io.Writer) {
	c.QueryService.Prompter = prompter
	c.QueryService.Progress = progress
	c.QueryService.Out = out
	c.SessionService.Prompter = prompter
	c.SessionService.Reader = reader
	c.SessionService.Progress = progress
	c.SessionService.Out = out
	c.SetupService.Reader = reader
	c.SetupService.Out = out
}
