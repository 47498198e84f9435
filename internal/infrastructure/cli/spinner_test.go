package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestSpinnerAnimatesWhileRunning(t *testing.T) {
	buf := &bytes.Buffer{}
	s := newSpinner(buf, true)

	s.Start("Thinking...")
	time.Sleep(250 * time.Millisecond)
	s.Stop()

	output := buf.String()
	if !strings.Contains(output, "⠋ Thinking...") {
		t.Fatalf("first frame missing:\n%q", output)
	}
	if !strings.HasSuffix(output, "\r\033[K") {
		t.Fatalf("line not cleared on stop:\n%q", output)
	}
}

func TestSpinnerDisabledStaysSilent(t *testing.T) {
	buf := &bytes.Buffer{}
	s := newSpinner(buf, false)

	s.Start("Thinking...")
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if buf.Len() != 0 {
		t.Fatalf("disabled spinner wrote output: %q", buf.String())
	}
}

func TestSpinnerRestarts(t *testing.T) {
	buf := &bytes.Buffer{}
	s := newSpinner(buf, true)

	s.Start("first")
	time.Sleep(120 * time.Millisecond)
	s.Stop()
	s.Start("second")
	time.Sleep(120 * time.Millisecond)
	s.Stop()

	output := buf.String()
	if !strings.Contains(output, "first") {
		t.Fatalf("first run missing:\n%q", output)
	}
	if !strings.Contains(output, "second") {
		t.Fatalf("second run missing:\n%q", output)
	}
}

func TestSpinnerStartTwiceKeepsOneAnimation(t *testing.T) {
	buf := &bytes.Buffer{}
	s := newSpinner(buf, true)

	s.Start("once")
	s.Start("twice")
	time.Sleep(120 * time.Millisecond)
	s.Stop()

	if strings.Contains(buf.String(), "twice") {
		t.Fatalf("second Start must not replace the message:\n%q", buf.String())
	}
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := newSpinner(&bytes.Buffer{}, true)
	s.Stop()
	s.Stop()
}
