package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/ask-go/internal/domain"
	"github.com/doeshing/ask-go/internal/ports"
)

// DoctorService runs environment diagnostics: configuration, API key,
// model reachability, shell resolution and the history store.
type DoctorService struct {
	Store    ports.ConfigStore
	Provider ports.ModelProvider
	History  ports.HistoryStore
	Logger   ports.Logger
}

// Run executes checks and returns a report.
func (s *DoctorService) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.Store.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, s.configFileCheck())
	checks = append(checks, apiKeyCheck(cfg))
	checks = append(checks, s.modelCheck(ctx, cfg))
	checks = append(checks, shellCheck())
	checks = append(checks, s.historyCheck(cfg))

	return domain.HealthReport{Checks: checks}, nil
}

func (s *DoctorService) configFileCheck() domain.HealthCheck {
	path := s.Store.Path()
	info, err := os.Stat(path)
	if err != nil {
		return warn("Config file", fmt.Sprintf("missing at %s", path))
	}
	if perm := info.Mode().Perm(); perm != domain.SecureFilePermissions {
		return warn("Config file", fmt.Sprintf("permissions %04o, want %04o", perm, domain.SecureFilePermissions))
	}
	return ok("Config file", path)
}

func apiKeyCheck(cfg domain.Config) domain.HealthCheck {
	if !cfg.Configured() {
		return fail("API key", "not set. Run 'ask' to start setup.")
	}
	return ok("API key", "configured")
}

func (s *DoctorService) modelCheck(ctx context.Context, cfg domain.Config) domain.HealthCheck {
	if !cfg.Configured() {
		return warn("Model", "skipped, no API key")
	}
	if err := s.Provider.Probe(ctx); err != nil {
		var genErr *domain.GenerationError
		if errors.As(err, &genErr) {
			return fail("Model", genErr.Message())
		}
		return fail("Model", err.Error())
	}
	return ok("Model", cfg.Model+" reachable")
}

func shellCheck() domain.HealthCheck {
	if shell := os.Getenv("SHELL"); shell != "" {
		return ok("Shell", shell)
	}
	return warn("Shell", "SHELL not set, commands run under /bin/sh")
}

func (s *DoctorService) historyCheck(cfg domain.Config) domain.HealthCheck {
	if !cfg.History.Enabled {
		return warn("History", "disabled in config")
	}
	if s.History == nil {
		return warn("History", "store not initialized")
	}
	stats, err := s.History.Stats()
	if err != nil {
		return warn("History", fmt.Sprintf("stats unavailable: %v", err))
	}
	details := fmt.Sprintf("%d records", stats.Total)
	if pathed, ok := s.History.(interface{ Path() string }); ok {
		if info, err := os.Stat(pathed.Path()); err == nil {
			details += fmt.Sprintf(", %s on disk", humanize.Bytes(uint64(info.Size())))
		}
	}
	return ok("History", details)
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
