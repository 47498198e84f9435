package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/doeshing/ask-go/internal/domain"
	"github.com/doeshing/ask-go/internal/ports"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiClient calls the generateContent endpoint directly over HTTP. The
// raw transport keeps provider error text visible to the failure
// classifier, which the official SDK hides behind its own error types.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	httpc   *http.Client
	logger  ports.Logger

	// sleep and progress are swapped out by tests to observe the retry
	// schedule without waiting on it.
	sleep    func(time.Duration)
	progress io.Writer
}

// NewGeminiClient builds a client for the given key and model.
func NewGeminiClient(apiKey, model string, logger ports.Logger) *GeminiClient {
	return &GeminiClient{
		apiKey:   apiKey,
		model:    model,
		baseURL:  defaultBaseURL,
		httpc:    &http.Client{Timeout: domain.DefaultHTTPClientTimeout},
		logger:   logger,
		sleep:    time.Sleep,
		progress: os.Stdout,
	}
}

// Request/response wire format for generateContent.
type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *geminiError `json:"error"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Generate implements ports.ModelProvider. Transient failures retry with
// doubling backoff up to MaxGenerationAttempts; auth and quota failures
// return immediately, as does a successful call with empty text.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	delay := domain.InitialRetryDelay
	var lastErr error
	for attempt := 1; attempt <= domain.MaxGenerationAttempts; attempt++ {
		text, err := c.call(ctx, prompt, domain.DefaultTemperature, domain.DefaultMaxOutputTokens)
		if err == nil {
			if text == "" {
				return "", &domain.GenerationError{Kind: domain.GenerationEmpty}
			}
			return text, nil
		}
		lastErr = err
		kind := classifyFailure(err)
		c.logger.Warn("generation attempt failed", map[string]interface{}{
			"attempt": attempt,
			"kind":    kind,
			"error":   err.Error(),
		})

		switch kind {
		case domain.GenerationAuth, domain.GenerationQuota:
			return "", &domain.GenerationError{Kind: kind, Detail: err.Error(), Err: err}
		case domain.GenerationNetwork:
			if attempt == domain.MaxGenerationAttempts {
				return "", &domain.GenerationError{Kind: kind, Detail: err.Error(), Err: err}
			}
			fmt.Fprintf(c.progress, "🔄 Network issue, retrying... (attempt %d/%d)\n", attempt, domain.MaxGenerationAttempts)
			c.sleep(delay)
			delay *= 2
		case domain.GenerationRateLimited:
			if attempt == domain.MaxGenerationAttempts {
				return "", &domain.GenerationError{Kind: kind, Detail: err.Error(), Err: err}
			}
			fmt.Fprintf(c.progress, "⏳ Rate limited, waiting... (attempt %d/%d)\n", attempt, domain.MaxGenerationAttempts)
			c.sleep(delay * 2)
			delay *= 2
		default:
			if attempt == domain.MaxGenerationAttempts {
				return "", &domain.GenerationError{Kind: domain.GenerationUnknown, Detail: err.Error(), Err: err}
			}
			fmt.Fprintf(c.progress, "⚠️ Request failed, retrying... (attempt %d/%d)\n", attempt, domain.MaxGenerationAttempts)
			c.sleep(delay)
			delay *= 2
		}
	}
	return "", &domain.GenerationError{Kind: domain.GenerationExhausted, Err: lastErr}
}

// Probe implements ports.ModelProvider. Setup uses it to validate an API
// key with a minimal request.
func (c *GeminiClient) Probe(ctx context.Context) error {
	text, err := c.call(ctx, domain.ProbePrompt, 0, domain.ProbeMaxTokens)
	if err != nil {
		return err
	}
	if !strings.Contains(strings.ToLower(text), "ok") {
		return fmt.Errorf("unexpected probe reply: %q", text)
	}
	return nil
}

func (c *GeminiClient) call(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxTokens,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("connection error: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var parsed geminiResponse
		if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error != nil {
			return "", fmt.Errorf("%s (HTTP %d)", parsed.Error.Message, resp.StatusCode)
		}
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 {
		return "", nil
	}
	var text strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return strings.TrimSpace(text.String()), nil
}

var _ ports.ModelProvider = (*GeminiClient)(nil)
