package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/doeshing/ask-go/internal/ports"
)

// Spinner renders an animated progress indicator on stdout while the
// model call is in flight. It stays silent when stdout is not a
// terminal so piped and redirected output remains clean.
type Spinner struct {
	frames   []string
	interval time.Duration
	writer   io.Writer
	enabled  bool

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewSpinner builds the stdout spinner.
func NewSpinner() *Spinner {
	return newSpinner(os.Stdout, isatty.IsTerminal(os.Stdout.Fd()))
}

func newSpinner(w io.Writer, enabled bool) *Spinner {
	return &Spinner{
		frames:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		interval: 80 * time.Millisecond,
		writer:   w,
		enabled:  enabled,
	}
}

// Start begins the animation with the given status message. Calling
// Start on a running spinner is a no-op.
func (s *Spinner) Start(message string) {
	if !s.enabled {
		return
	}
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopChan = make(chan struct{})
	stop := s.stopChan
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		idx := 0
		for {
			select {
			case <-stop:
				fmt.Fprint(s.writer, "\r\033[K")
				return
			default:
				fmt.Fprintf(s.writer, "\r%s %s", s.frames[idx%len(s.frames)], message)
				idx++
				time.Sleep(s.interval)
			}
		}
	}()
}

// Stop halts the animation and clears the spinner line.
func (s *Spinner) Stop() {
	if !s.enabled {
		return
	}
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	s.wg.Wait()
}

var _ ports.ProgressIndicator = (*Spinner)(nil)
