package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/ask-go/internal/app"
	"github.com/doeshing/ask-go/internal/domain"
	"github.com/doeshing/ask-go/internal/infrastructure/history"
	"github.com/doeshing/ask-go/internal/ports"
	"github.com/doeshing/ask-go/internal/version"
)

func newSetupCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Run the API key setup wizard",
		RunE: func(cmd *cobra.Command, args []string) error {
			configured, err := container.SetupService.Run(cmd.Context())
			if err != nil {
				return err
			}
			if configured {
				return container.RefreshProvider(cmd.Context())
			}
			return nil
		},
	}
}

func newResetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return container.SetupService.Reset()
		},
	}
}

func newHistoryCommand(container *app.Container) *cobra.Command {
	var (
		limit      int
		search     string
		clear      bool
		exportPath string
		stats      bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the query history",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := container.HistoryStore
			out := cmd.OutOrStdout()
			if _, disabled := store.(history.NopStore); disabled {
				fmt.Fprintln(out, "History is disabled in the configuration.")
				return nil
			}
			switch {
			case clear:
				if err := store.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(out, "🧹 History cleared.")
				return nil
			case exportPath != "":
				if err := store.ExportJSON(exportPath); err != nil {
					return err
				}
				fmt.Fprintf(out, "Exported history to %s\n", exportPath)
				return nil
			case stats:
				return renderHistoryStats(out, store)
			default:
				return renderHistoryRecords(out, store, limit, search)
			}
		},
	}
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show")
	cmd.Flags().StringVar(&search, "search", "", "Filter by query or command text")
	cmd.Flags().BoolVar(&clear, "clear", false, "Delete all history records")
	cmd.Flags().StringVar(&exportPath, "export", "", "Export history to a JSONL file")
	cmd.Flags().BoolVar(&stats, "stats", false, "Show aggregate statistics")
	return cmd
}

func renderHistoryRecords(out io.Writer, store ports.HistoryStore, limit int, search string) error {
	records, err := store.Records(limit, search)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No history records found.")
		return nil
	}
	for _, rec := range records {
		status := "○"
		if rec.Executed {
			status = "✓"
			if !rec.Success {
				status = "✗"
			}
		}
		line := fmt.Sprintf("%s | %s %s | %s", humanize.Time(rec.Timestamp), status, rec.Command, rec.Query)
		if rec.Dangerous {
			line += " ⚠️"
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func renderHistoryStats(out io.Writer, store ports.HistoryStore) error {
	stats, err := store.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Total queries: %d\n", stats.Total)
	fmt.Fprintf(out, "Executed:      %d\n", stats.Executed)
	fmt.Fprintf(out, "Succeeded:     %d\n", stats.Succeeded)
	fmt.Fprintf(out, "Dangerous:     %d\n", stats.Dangerous)
	if !stats.Newest.IsZero() {
		fmt.Fprintf(out, "Most recent:   %s\n", humanize.Time(stats.Newest))
	}
	return nil
}

func newDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose environment setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := container.DoctorService.Run(cmd.Context())
			renderDoctorReport(cmd.OutOrStdout(), report)
			return err
		},
	}
}

func renderDoctorReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		glyph := "✅"
		switch check.Status {
		case domain.HealthWarn:
			glyph = "⚠️"
		case domain.HealthError:
			glyph = "➜"
		}
		fmt.Fprintf(out, "%s %s - %s\n", glyph, check.Name, check.Details)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ask %s (commit %s, built %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}

func newUpdateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Show how to update ask",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Update ask with your package manager, or with Go:")
			fmt.Fprintln(out, "  go install github.com/doeshing/ask-go/cmd/ask@latest")
		},
	}
}
