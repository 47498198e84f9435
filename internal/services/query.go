package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/doeshing/ask-go/internal/domain"
	"github.com/doeshing/ask-go/internal/ports"
)

// QueryService orchestrates the one-shot pipeline: collect system facts,
// build the prompt, call the model, parse, confirm and execute.
type QueryService struct {
	Config    domain.Config
	Collector ports.SystemInfoCollector
	Builder   ports.PromptBuilder
	Provider  ports.ModelProvider
	Runner    ports.CommandRunner
	Prompter  ports.ConfirmationPrompter
	Progress  ports.ProgressIndicator
	History   ports.HistoryStore
	Logger    ports.Logger
	Out       io.Writer
}

// Run processes a single natural-language query. Generation failures are
// rendered as service lines and recovered; only spawn-level execution
// faults propagate as errors.
func (s *QueryService) Run(req domain.QueryRequest) (domain.QueryReport, error) {
	if s.Collector == nil || s.Builder == nil || s.Provider == nil ||
		s.Runner == nil || s.Logger == nil {
		return domain.QueryReport{}, errors.New("services.QueryService dependencies not satisfied")
	}

	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}
	out := writerOrStdout(s.Out)

	query := strings.TrimSpace(req.Query)
	if query == "" {
		fmt.Fprintln(out, "➜ Please provide a valid query.")
		return domain.QueryReport{}, nil
	}

	prompt, err := s.Builder.Single(s.Collector.Collect(), query)
	if err != nil {
		return domain.QueryReport{}, fmt.Errorf("build prompt: %w", err)
	}

	text, err := s.generate(ctx, prompt)
	if err != nil {
		var genErr *domain.GenerationError
		if errors.As(err, &genErr) {
			fmt.Fprintln(out, "➜ "+genErr.Message())
			return domain.QueryReport{}, nil
		}
		return domain.QueryReport{}, fmt.Errorf("generate command: %w", err)
	}

	result := domain.ParseResponse(text)
	report := domain.QueryReport{Result: result}

	if result.ServiceError {
		fmt.Fprintln(out, result.Raw)
		return report, nil
	}
	if result.OutOfContext {
		fmt.Fprintln(out, result.RefusalText())
		return report, nil
	}

	if !req.Execute {
		fmt.Fprintln(out, result.Raw)
		s.record(domain.HistoryRecord{
			Query:     query,
			Command:   result.Command,
			Dangerous: result.Dangerous,
		})
		return report, nil
	}

	if result.Command == "" {
		fmt.Fprintln(out, "➜ No valid command found to execute.")
		return report, nil
	}

	if req.Force {
		if result.Dangerous {
			fmt.Fprintf(out, "⚠️ WARNING: %s\n", result.Warning)
			fmt.Fprintln(out, "Executing anyway due to --force flag...")
		}
		report.Decision = domain.Confirmed
	} else {
		if s.Prompter == nil {
			return report, errors.New("services.QueryService confirmation prompter not satisfied")
		}
		report.Decision = s.Prompter.Confirm(result)
		if report.Decision != domain.Confirmed {
			fmt.Fprintln(out, "👋 Command execution cancelled.")
			s.record(domain.HistoryRecord{
				Query:     query,
				Command:   result.Command,
				Dangerous: result.Dangerous,
			})
			return report, nil
		}
	}

	execution, err := executeCommand(ctx, s.Runner, result.Command, out)
	if execution != nil {
		report.Execution = execution
	}
	s.record(domain.HistoryRecord{
		Query:     query,
		Command:   result.Command,
		Dangerous: result.Dangerous,
		Executed:  execution != nil,
		Success:   execution != nil && execution.Success(),
		ExitCode:  exitCodeOf(execution),
	})
	return report, err
}

func (s *QueryService) generate(ctx context.Context, prompt string) (string, error) {
	return generateWithProgress(ctx, s.Provider, s.Progress, prompt)
}

func generateWithProgress(ctx context.Context, provider ports.ModelProvider, progress ports.ProgressIndicator, prompt string) (string, error) {
	if progress != nil {
		progress.Start("Thinking...")
		defer progress.Stop()
	}
	return provider.Generate(ctx, prompt)
}

// executeCommand runs the command and prints its outcome. Refusal-grade
// faults (empty or oversized commands) are reported and swallowed; spawn
// faults are reported and returned so the process can exit non-zero.
func executeCommand(ctx context.Context, runner ports.CommandRunner, command string, out io.Writer) (*domain.ExecutionResult, error) {
	fmt.Fprintf(out, "Executing: %s\n", command)

	result, err := runner.Run(ctx, command, out)
	if err != nil {
		var execErr *domain.ExecutionError
		if errors.As(err, &execErr) {
			fmt.Fprintln(out, "➜ "+execErr.Message())
			switch execErr.Kind {
			case domain.ExecutionEmptyCommand, domain.ExecutionTooLong:
				return nil, nil
			}
			return nil, err
		}
		return nil, fmt.Errorf("run command: %w", err)
	}

	if result.Interrupted {
		fmt.Fprintln(out, "\n\n⚠️ Command interrupted by user. Terminating process...")
		fmt.Fprintln(out, "✅ Process terminated successfully.")
		return &result, nil
	}
	if result.ExitCode == 0 {
		fmt.Fprintln(out, "\n✅ Command executed successfully.")
	} else {
		fmt.Fprintf(out, "\n➜ Command failed with exit code %d.\n", result.ExitCode)
	}
	return &result, nil
}

func (s *QueryService) record(rec domain.HistoryRecord) {
	if s.History == nil {
		return
	}
	if err := s.History.Save(rec); err != nil {
		s.Logger.Warn("history save failed", map[string]interface{}{"error": err.Error()})
	}
}

func exitCodeOf(result *domain.ExecutionResult) int {
	if result == nil {
		return 0
	}
	return result.ExitCode
}

func writerOrStdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
