package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/ask-go/internal/domain"
	"github.com/doeshing/ask-go/internal/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*GeminiClient, *[]time.Duration, *bytes.Buffer) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewGeminiClient("test-key", "test-model", logger.NewStd(false))
	client.baseURL = server.URL
	client.httpc = server.Client()

	var delays []time.Duration
	client.sleep = func(d time.Duration) { delays = append(delays, d) }
	progress := &bytes.Buffer{}
	client.progress = progress
	return client, &delays, progress
}

func candidateJSON(text string) string {
	return fmt.Sprintf(`{"candidates":[{"content":{"parts":[{"text":%q}]}}]}`, text)
}

func TestGenerateReturnsTrimmedText(t *testing.T) {
	client, delays, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if !strings.Contains(r.URL.String(), "test-model:generateContent") {
			t.Errorf("unexpected URL %s", r.URL)
		}
		fmt.Fprint(w, candidateJSON("  → ls -la \n"))
	})

	text, err := client.Generate(context.Background(), "list files")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if text != "→ ls -la" {
		t.Fatalf("text = %q", text)
	}
	if len(*delays) != 0 {
		t.Fatalf("unexpected sleeps: %v", *delays)
	}
}

func TestGenerateRetriesNetworkFailuresWithDoublingDelay(t *testing.T) {
	calls := 0
	client, delays, progress := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, `{"error":{"code":503,"message":"network unreachable","status":"UNAVAILABLE"}}`)
			return
		}
		fmt.Fprint(w, candidateJSON("→ df -h"))
	})

	text, err := client.Generate(context.Background(), "check disk space")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if text != "→ df -h" {
		t.Fatalf("text = %q", text)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
	want := []time.Duration{domain.InitialRetryDelay, 2 * domain.InitialRetryDelay}
	if diff := cmp.Diff(want, *delays); diff != "" {
		t.Fatalf("retry delays mismatch (-want +got):\n%s", diff)
	}
	out := progress.String()
	if !strings.Contains(out, "(attempt 1/3)") || !strings.Contains(out, "(attempt 2/3)") {
		t.Fatalf("progress output missing attempts: %q", out)
	}
}

func TestGenerateAuthFailureDoesNotRetry(t *testing.T) {
	calls := 0
	client, delays, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`)
	})

	_, err := client.Generate(context.Background(), "list files")
	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %v, want GenerationError", err)
	}
	if genErr.Kind != domain.GenerationAuth {
		t.Fatalf("Kind = %v, want auth", genErr.Kind)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if len(*delays) != 0 {
		t.Fatalf("unexpected sleeps: %v", *delays)
	}
}

func TestGenerateEmptyResponseDoesNotRetry(t *testing.T) {
	calls := 0
	client, delays, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"candidates":[]}`)
	})

	_, err := client.Generate(context.Background(), "list files")
	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %v, want GenerationError", err)
	}
	if genErr.Kind != domain.GenerationEmpty {
		t.Fatalf("Kind = %v, want empty", genErr.Kind)
	}
	if calls != 1 || len(*delays) != 0 {
		t.Fatalf("calls = %d, sleeps = %v", calls, *delays)
	}
}

func TestGenerateRateLimitWaitsTwiceTheDelay(t *testing.T) {
	calls := 0
	client, delays, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"error":{"code":429,"message":"rate exceeded","status":"RESOURCE_EXHAUSTED"}}`)
			return
		}
		fmt.Fprint(w, candidateJSON("→ ls"))
	})

	if _, err := client.Generate(context.Background(), "list files"); err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	want := []time.Duration{2 * domain.InitialRetryDelay}
	if diff := cmp.Diff(want, *delays); diff != "" {
		t.Fatalf("rate-limit delay mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateExhaustsUnknownFailures(t *testing.T) {
	calls := 0
	client, delays, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":{"code":500,"message":"candidate blocked","status":"INTERNAL"}}`)
	})

	_, err := client.Generate(context.Background(), "list files")
	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %v, want GenerationError", err)
	}
	if genErr.Kind != domain.GenerationUnknown {
		t.Fatalf("Kind = %v, want unknown", genErr.Kind)
	}
	if calls != domain.MaxGenerationAttempts {
		t.Fatalf("calls = %d, want %d", calls, domain.MaxGenerationAttempts)
	}
	want := []time.Duration{domain.InitialRetryDelay, 2 * domain.InitialRetryDelay}
	if diff := cmp.Diff(want, *delays); diff != "" {
		t.Fatalf("unknown-failure delays mismatch (-want +got):\n%s", diff)
	}
}

func TestProbeAcceptsOKReply(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, candidateJSON("OK."))
	})
	if err := client.Probe(context.Background()); err != nil {
		t.Fatalf("Probe error: %v", err)
	}
}

func TestProbeRejectsUnexpectedReply(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, candidateJSON("hello there"))
	})
	if err := client.Probe(context.Background()); err == nil {
		t.Fatal("expected probe to reject reply without ok")
	}
}
