package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/doeshing/ask-go/internal/domain"
	"github.com/doeshing/ask-go/internal/ports"
)

// Prompter handles the interactive parts of the CLI: execution
// confirmations and free-form line input. It reads stdin and writes
// stdout unless the caller supplies replacements.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter constructs a prompter referencing stdio.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm shows the generated command and asks whether to run it.
// Commands flagged as dangerous get a stronger warning and prompt.
// Empty input counts as no; repeated invalid answers abort.
func (p *Prompter) Confirm(result domain.CommandResult) domain.Decision {
	fmt.Fprintf(p.out, "\nGenerated command: %s\n", result.Command)

	prompt := "Do you want to execute this command? [y/N]: "
	if result.Dangerous {
		fmt.Fprintf(p.out, "\n⚠️ WARNING: %s\n", result.Warning)
		fmt.Fprintln(p.out, "This command could potentially cause harm to your system or data.")
		prompt = "Are you sure you want to execute this command? [y/N]: "
	}

	attempts := 0
	for attempts < domain.MaxConfirmationAttempts {
		fmt.Fprint(p.out, prompt)
		line, err := p.in.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		if err != nil && answer == "" {
			fmt.Fprintln(p.out, "\n\n👋 Input cancelled.")
			return domain.Aborted
		}
		switch answer {
		case "y", "yes":
			return domain.Confirmed
		case "n", "no", "":
			return domain.Declined
		default:
			fmt.Fprintln(p.out, "Please enter 'y' for yes or 'n' for no.")
			attempts++
		}
	}

	fmt.Fprintln(p.out, "➜ Too many invalid attempts. Cancelling execution.")
	return domain.Aborted
}

// ReadLine prints the prompt and returns the next trimmed input line.
// The error is non-nil only when the input stream ends with nothing
// left to return.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	trimmed := strings.TrimSpace(line)
	if err != nil && trimmed == "" {
		return "", err
	}
	return trimmed, nil
}

var _ ports.ConfirmationPrompter = (*Prompter)(nil)
var _ ports.LineReader = (*Prompter)(nil)
