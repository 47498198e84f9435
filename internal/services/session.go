package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/doeshing/ask-go/internal/domain"
	"github.com/doeshing/ask-go/internal/ports"
)

// SessionOptions configures an interactive session.
type SessionOptions struct {
	Execute      bool
	ContextLimit int
}

// SessionService runs the interactive conversation loop: follow-up
// queries share a rolling context so the model can refine earlier
// commands.
type SessionService struct {
	Config    domain.Config
	Collector ports.SystemInfoCollector
	Builder   ports.PromptBuilder
	Provider  ports.ModelProvider
	Runner    ports.CommandRunner
	Prompter  ports.ConfirmationPrompter
	Reader    ports.LineReader
	Progress  ports.ProgressIndicator
	History   ports.HistoryStore
	Logger    ports.Logger
	Out       io.Writer
}

// sessionCommands lists the slash commands in display order.
var sessionCommands = []struct {
	name        string
	description string
}{
	{"/exit", "Exit interactive session"},
	{"/quit", "Exit interactive session"},
	{"/clear", "Clear conversation context"},
	{"/history", "Show query history"},
	{"/help", "Show interactive help"},
	{"/last", "Re-run last command"},
}

// Run starts the session loop, processing initialQuery first when one was
// given. The loop ends on /exit, end of input, or context cancellation.
func (s *SessionService) Run(ctx context.Context, initialQuery string, opts SessionOptions) error {
	if s.Collector == nil || s.Builder == nil || s.Provider == nil ||
		s.Runner == nil || s.Reader == nil || s.Logger == nil {
		return errors.New("services.SessionService dependencies not satisfied")
	}
	if opts.Execute && s.Prompter == nil {
		return errors.New("services.SessionService confirmation prompter not satisfied")
	}
	out := writerOrStdout(s.Out)

	limit := opts.ContextLimit
	if limit == 0 {
		limit = s.Config.ContextLimit
	}
	conv := domain.NewConversationContext(limit)

	modeDesc := "(generation only)"
	if opts.Execute {
		modeDesc = "with execution"
	}
	fmt.Fprintf(out, "\n🚀 Starting interactive session %s\n", modeDesc)
	fmt.Fprintf(out, "📝 Context limit: %d queries\n", conv.Limit())
	fmt.Fprintln(out, "💡 Type /help for commands, /exit to quit")

	if initial := strings.TrimSpace(initialQuery); initial != "" {
		fmt.Fprintf(out, "\n➜ Initial query: %s\n", initial)
		s.processQuery(ctx, conv, initial, opts.Execute, out)
	}

	running := true
	for running {
		if ctx.Err() != nil {
			fmt.Fprintln(out, "\n👋 Session interrupted.")
			break
		}
		if conv.Len() > 0 {
			fmt.Fprintf(out, "\n%s\n", conv.Summary())
		}
		indicator := "➜"
		if opts.Execute {
			indicator = "⚡"
		}
		input, err := s.Reader.ReadLine(fmt.Sprintf("\n%s Follow-up query (or /help for commands): ", indicator))
		if err != nil {
			fmt.Fprintln(out, "\n👋 Session interrupted.")
			break
		}
		if input == "" {
			continue
		}
		if s.handleCommand(ctx, conv, input, opts.Execute, out, &running) {
			continue
		}
		s.processQuery(ctx, conv, input, opts.Execute, out)
	}

	if conv.Len() > 0 {
		fmt.Fprintf(out, "\n📊 Session completed with %d queries.\n", conv.Len())
	}
	fmt.Fprintln(out, "👋 Interactive session ended.")
	return nil
}

// handleCommand intercepts slash commands. Unknown slash input falls
// through to normal query processing.
func (s *SessionService) handleCommand(ctx context.Context, conv *domain.ConversationContext, raw string, execute bool, out io.Writer, running *bool) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "/exit", "/quit":
		fmt.Fprintln(out, "👋 Exiting interactive session...")
		*running = false
		return true
	case "/clear":
		conv.Clear()
		fmt.Fprintln(out, "🧹 Context cleared! Starting fresh conversation.")
		return true
	case "/history":
		fmt.Fprintln(out, conv.HistoryLines())
		return true
	case "/help":
		s.printHelp(out)
		return true
	case "/last":
		s.replayLast(ctx, conv, execute, out)
		return true
	}
	return false
}

func (s *SessionService) printHelp(out io.Writer) {
	fmt.Fprintln(out, "\n🔄 Interactive Mode Commands:")
	fmt.Fprintln(out, strings.Repeat("=", 40))
	for _, entry := range sessionCommands {
		fmt.Fprintf(out, "  %-12s - %s\n", entry.name, entry.description)
	}
	fmt.Fprintln(out, "\n💡 Tips:")
	fmt.Fprintln(out, "  • Ask follow-up questions to refine commands")
	fmt.Fprintln(out, "  • Reference previous results in your queries")
	fmt.Fprintln(out, "  • Use natural language to build upon past commands")
	fmt.Fprintln(out, strings.Repeat("=", 40))
}

// replayLast re-runs the most recent command. Commands that were only
// generated need confirmation first, and only in execute mode.
func (s *SessionService) replayLast(ctx context.Context, conv *domain.ConversationContext, execute bool, out io.Writer) {
	last, ok := conv.Last()
	if !ok {
		fmt.Fprintln(out, "No previous commands in this session.")
		return
	}
	if last.Executed {
		fmt.Fprintf(out, "Re-executing: %s\n", last.Command)
		s.runForSession(ctx, conv, last.Command, out)
		return
	}
	fmt.Fprintf(out, "Last command was: %s\n", last.Command)
	if !execute {
		fmt.Fprintln(out, "Use --execute mode to run commands directly.")
		return
	}
	if s.Prompter.Confirm(domain.CommandResult{Command: last.Command}) == domain.Confirmed {
		s.runForSession(ctx, conv, last.Command, out)
	}
}

func (s *SessionService) processQuery(ctx context.Context, conv *domain.ConversationContext, query string, execute bool, out io.Writer) {
	var prompt string
	var err error
	info := s.Collector.Collect()
	if conv.Len() == 0 {
		prompt, err = s.Builder.Single(info, query)
	} else {
		prompt, err = s.Builder.Contextual(info, conv.PromptBlock(), query)
	}
	if err != nil {
		fmt.Fprintf(out, "➜ Error processing query: %s\n", err)
		return
	}

	text, err := generateWithProgress(ctx, s.Provider, s.Progress, prompt)
	if err != nil {
		var genErr *domain.GenerationError
		if errors.As(err, &genErr) {
			fmt.Fprintln(out, "➜ "+genErr.Message())
		} else {
			fmt.Fprintf(out, "➜ Error processing query: %s\n", err)
		}
		return
	}

	result := domain.ParseResponse(text)
	if result.ServiceError {
		fmt.Fprintln(out, result.Raw)
		return
	}
	if result.OutOfContext {
		fmt.Fprintln(out, domain.ServiceErrorMarker+" "+domain.OutOfContextReply)
		return
	}
	if result.Command == "" {
		fmt.Fprintln(out, "➜ No valid command found in response.")
		return
	}

	fmt.Fprintln(out, result.Raw)
	conv.Add(query, result.Command, false)

	executed := false
	succeeded := false
	if execute {
		if s.Prompter.Confirm(result) == domain.Confirmed {
			if res := s.runForSession(ctx, conv, result.Command, out); res != nil {
				executed = true
				succeeded = res.Success()
			}
			fmt.Fprintln(out)
		} else {
			fmt.Fprintln(out, "👋 Command execution cancelled.")
			fmt.Fprintln(out)
		}
	}
	s.record(domain.HistoryRecord{
		Query:     query,
		Command:   result.Command,
		Dangerous: result.Dangerous,
		Executed:  executed,
		Success:   succeeded,
	})
}

// runForSession executes a command and folds the outcome back into the
// conversation context. Spawn faults are already reported by the shared
// execute path; the session keeps going.
func (s *SessionService) runForSession(ctx context.Context, conv *domain.ConversationContext, command string, out io.Writer) *domain.ExecutionResult {
	result, err := executeCommand(ctx, s.Runner, command, out)
	if err != nil {
		s.Logger.Warn("session command failed to spawn", map[string]interface{}{"error": err.Error()})
	}
	if result != nil {
		conv.MarkLastExecution(true, result.Success())
	}
	return result
}

func (s *SessionService) record(rec domain.HistoryRecord) {
	if s.History == nil {
		return
	}
	if err := s.History.Save(rec); err != nil {
		s.Logger.Warn("history save failed", map[string]interface{}{"error": err.Error()})
	}
}
