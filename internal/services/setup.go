package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/doeshing/ask-go/internal/domain"
	"github.com/doeshing/ask-go/internal/ports"
)

// SetupService walks the user through first-run configuration: obtain an
// API key, probe it against the live service and persist it. It also
// handles the reverse operation, resetting the stored configuration.
type SetupService struct {
	Store   ports.ConfigStore
	Reader  ports.LineReader
	Factory func(apiKey string) ports.ModelProvider
	Logger  ports.Logger
	Out     io.Writer
}

// Run executes the setup wizard. It returns true when a key was validated
// and saved. A user backing out is not an error; exhausting every attempt
// returns domain.ErrSetupExhausted.
func (s *SetupService) Run(ctx context.Context) (bool, error) {
	if s.Store == nil || s.Reader == nil || s.Factory == nil || s.Logger == nil {
		return false, errors.New("services.SetupService dependencies not satisfied")
	}
	out := writerOrStdout(s.Out)

	fmt.Fprintln(out, "\n🚀 Quick setup (30 seconds, one-time only)")
	fmt.Fprintln(out, "\n1️⃣  Get your free API key:")
	fmt.Fprintf(out, "   %s\n", domain.APIKeyURL)
	fmt.Fprintln(out, "   (Sign in → Create API Key → Copy)")
	fmt.Fprintln(out)

	for attempts := 0; attempts < domain.MaxSetupAttempts; {
		key, err := s.Reader.ReadLine("2️⃣  Paste key here: ")
		if err != nil {
			fmt.Fprintln(out, "\n\n👋 Setup cancelled.")
			return false, nil
		}
		if key == "" {
			fmt.Fprintln(out, "\n👋 No key entered. Exiting.")
			return false, nil
		}
		if len(key) < domain.MinAPIKeyLength {
			fmt.Fprintln(out, "   ⚠️ API key seems too short. Please check and try again.")
			fmt.Fprintln(out)
			attempts++
			continue
		}

		fmt.Fprint(out, "   Testing...")
		if err := s.Factory(key).Probe(ctx); err != nil {
			s.Logger.Debug("api key probe failed", map[string]interface{}{"error": err.Error()})
			fmt.Fprintln(out, " ➜")
			fmt.Fprintln(out, "   Invalid key or connection issue. Please try again.")
			fmt.Fprintln(out)
			attempts++
			continue
		}

		if err := s.saveKey(ctx, key); err != nil {
			fmt.Fprintln(out, " ➜")
			fmt.Fprintf(out, "   Error saving API key: %s\n", err)
			return false, err
		}
		fmt.Fprintln(out, " ✅")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "✨ Setup complete! You're ready to go.")
		fmt.Fprintln(out)
		return true, nil
	}

	fmt.Fprintf(out, "➜ Too many failed attempts (%d). Please check your API key and try again later.\n", domain.MaxSetupAttempts)
	return false, domain.ErrSetupExhausted
}

// saveKey merges the key into whatever configuration already exists so a
// re-run of setup keeps user-tuned settings.
func (s *SetupService) saveKey(ctx context.Context, key string) error {
	cfg, err := s.Store.Load(ctx)
	if err != nil {
		cfg = domain.Config{}
	}
	cfg.APIKey = key
	cfg.Normalize()
	if err := s.Store.Save(cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// Reset deletes the stored configuration.
func (s *SetupService) Reset() error {
	if s.Store == nil {
		return errors.New("services.SetupService dependencies not satisfied")
	}
	out := writerOrStdout(s.Out)

	err := s.Store.Delete()
	switch {
	case err == nil:
		fmt.Fprintln(out, "➜ Reset complete. Run 'ask' again to set up.")
		return nil
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintln(out, "ℹ️ No configuration found to reset.")
		return nil
	case errors.Is(err, fs.ErrPermission):
		fmt.Fprintln(out, "➜ Permission denied. Cannot delete config file.")
		fmt.Fprintln(out, "   Please manually delete: "+s.Store.Path())
		return err
	default:
		return fmt.Errorf("delete config: %w", err)
	}
}
