package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/ask-go/internal/app"
	"github.com/doeshing/ask-go/internal/domain"
	"github.com/doeshing/ask-go/internal/services"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}
	prompter := NewPrompter(nil, nil)
	container.AttachInteraction(prompter, prompter, NewSpinner(), os.Stdout)

	var (
		execute      bool
		force        bool
		interactive  bool
		contextLimit int
		verbose      bool
	)

	root := &cobra.Command{
		Use:   "ask [query...]",
		Short: "Convert natural language to terminal commands",
		Long:  "ask turns a natural-language request into a single terminal command using Google Gemini,\nwith optional confirmation-gated execution and interactive follow-up sessions.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if force && !execute {
				return fmt.Errorf("--force requires --execute")
			}
			if force && interactive {
				return fmt.Errorf("--interactive cannot be combined with --force")
			}
			if contextLimit < domain.MinContextLimit || contextLimit > domain.MaxContextLimit {
				return fmt.Errorf("--context-limit must be between %d and %d", domain.MinContextLimit, domain.MaxContextLimit)
			}
			if len(args) == 0 && !interactive {
				return cmd.Help()
			}

			ctx := cmd.Context()
			if err := ensureConfigured(ctx, container); err != nil {
				return err
			}
			if !container.Config.Configured() {
				// The user backed out of setup.
				return nil
			}

			query := strings.Join(args, " ")
			if interactive {
				return container.SessionService.Run(ctx, query, services.SessionOptions{
					Execute:      execute,
					ContextLimit: contextLimit,
				})
			}
			_, err := container.QueryService.Run(domain.QueryRequest{
				Context: ctx,
				Query:   query,
				Execute: execute,
				Force:   force,
			})
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.Flags()
	flags.BoolVarP(&execute, "execute", "e", false, "Execute the generated command after confirmation")
	flags.BoolVarP(&force, "force", "f", false, "Skip confirmation when executing (requires --execute)")
	flags.BoolVarP(&interactive, "interactive", "i", false, "Start an interactive session with follow-up queries")
	flags.IntVarP(&contextLimit, "context-limit", "l", domain.DefaultContextLimit, "Queries remembered in interactive mode (1-20)")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")

	root.AddCommand(newSetupCommand(container))
	root.AddCommand(newResetCommand(container))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newDoctorCommand(container))
	root.AddCommand(newVersionCommand())
	root.AddCommand(newUpdateCommand())
	return root, nil
}

// ensureConfigured runs the setup wizard on first use. Model-backed paths
// call this before generating anything.
func ensureConfigured(ctx context.Context, container *app.Container) error {
	if container.Config.Configured() {
		return nil
	}
	configured, err := container.SetupService.Run(ctx)
	if err != nil {
		return err
	}
	if !configured {
		return nil
	}
	return container.RefreshProvider(ctx)
}
