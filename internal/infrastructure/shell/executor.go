package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/doeshing/ask-go/internal/domain"
	"github.com/doeshing/ask-go/internal/ports"
)

// Runner executes generated commands through the user's shell.
type Runner struct {
	shell string
	grace time.Duration
}

// NewRunner resolves the shell from $SHELL with a /bin/sh fallback.
func NewRunner() *Runner {
	sh := os.Getenv("SHELL")
	if sh == "" {
		sh = "/bin/sh"
	}
	return &Runner{shell: sh, grace: domain.TerminationGrace}
}

// Run implements ports.CommandRunner. Combined stdout and stderr stream to
// out line by line as the command produces them. A command that runs and
// exits non-zero reports its code in the result with a nil error.
//
// Cancelling ctx sends SIGTERM to the child's process group, waits up to
// the termination grace period, then kills the group. The child is reaped
// on every path.
func (r *Runner) Run(ctx context.Context, command string, out io.Writer) (domain.ExecutionResult, error) {
	if strings.TrimSpace(command) == "" {
		return domain.ExecutionResult{}, &domain.ExecutionError{Kind: domain.ExecutionEmptyCommand}
	}
	if len(command) > domain.MaxCommandLength {
		return domain.ExecutionResult{}, &domain.ExecutionError{Kind: domain.ExecutionTooLong}
	}

	cmd := exec.Command(r.shell, "-c", command)
	setProcessGroup(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return domain.ExecutionResult{}, spawnError(err)
	}
	cmd.Stderr = cmd.Stdout

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return domain.ExecutionResult{}, spawnError(err)
	}

	// The watcher owns cancellation: SIGTERM, bounded wait, SIGKILL.
	// done closes once the child is reaped, which also releases a watcher
	// still inside its grace wait.
	interrupted := false
	done := make(chan struct{})
	watcherDone := make(chan struct{})
	go func() {
		defer close(watcherDone)
		select {
		case <-ctx.Done():
			interrupted = true
			signalTerm(cmd)
			select {
			case <-done:
			case <-time.After(r.grace):
				signalKill(cmd)
			}
		case <-done:
		}
	}()

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		fmt.Fprintln(out, scanner.Text())
	}

	waitErr := cmd.Wait()
	close(done)
	<-watcherDone

	result := domain.ExecutionResult{
		Interrupted: interrupted,
		DurationMS:  time.Since(start).Milliseconds(),
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		if !interrupted {
			return result, spawnError(waitErr)
		}
	}
	return result, nil
}

func spawnError(err error) *domain.ExecutionError {
	switch {
	case errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist):
		return &domain.ExecutionError{Kind: domain.ExecutionNotFound, Err: err}
	case errors.Is(err, fs.ErrPermission):
		return &domain.ExecutionError{Kind: domain.ExecutionPermissionDenied, Err: err}
	default:
		return &domain.ExecutionError{Kind: domain.ExecutionSpawnFailure, Detail: err.Error(), Err: err}
	}
}

var _ ports.CommandRunner = (*Runner)(nil)
