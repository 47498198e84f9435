package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/doeshing/ask-go/internal/domain"
	"github.com/doeshing/ask-go/internal/infrastructure/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, err := cli.NewRootCmd(ctx, cli.Options{Verbose: isVerbose()})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if err := root.ExecuteContext(ctx); err != nil {
		if !alreadyReported(err) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// alreadyReported recognizes errors whose user-facing message was printed
// by a service; they only carry the non-zero exit code upward.
func alreadyReported(err error) bool {
	var genErr *domain.GenerationError
	var execErr *domain.ExecutionError
	return errors.As(err, &genErr) || errors.As(err, &execErr) ||
		errors.Is(err, domain.ErrSetupExhausted)
}

func isVerbose() bool {
	if v := os.Getenv("ASK_DEBUG"); strings.EqualFold(v, "1") || strings.EqualFold(v, "true") {
		return true
	}
	for _, arg := range os.Args[1:] {
		if arg == "--verbose" {
			return true
		}
	}
	return false
}
