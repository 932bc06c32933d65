package providers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatJSONObject asks the provider to emit a single JSON object.
const FormatJSONObject = "json_object"

// Responder issues single-turn completion requests.
// Implementations are created once per process and must be safe for
// concurrent use.
type Responder interface {
	// Respond sends one request and returns the raw response envelope.
	Respond(ctx context.Context, req *ResponseRequest) (*Response, error)

	// Name returns the provider identifier (e.g., "openai").
	Name() string
}

// HealthChecker is implemented by providers that can verify credentials
// without performing a completion.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// ResponseRequest is a request to a completion provider.
type ResponseRequest struct {
	Model  string
	Input  string
	Format string // FormatJSONObject or "" for plain text

	// Temperature is sent only when set.
	Temperature *float64

	// Request tracking
	RequestID string
}

// Response is the provider response envelope. Text may arrive either in the
// flattened OutputText field or inside the Output items.
type Response struct {
	ID         string       `json:"id"`
	Model      string       `json:"model"`
	OutputText string       `json:"output_text,omitempty"`
	Output     []OutputItem `json:"output"`
	Usage      Usage        `json:"usage"`
}

// OutputItem is one entry of the structured output list.
type OutputItem struct {
	Type    string          `json:"type"` // "message", "reasoning", ...
	Role    string          `json:"role,omitempty"`
	Content []OutputContent `json:"content,omitempty"`
}

// OutputContent is one content entry of an output item.
type OutputContent struct {
	Type string `json:"type"` // "output_text", "refusal", ...
	Text string `json:"text,omitempty"`
}

// Usage reports token counts when the provider includes them.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// APIError is a non-2xx answer from a provider.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error (status %d)", e.Provider, e.StatusCode)
}

// parseRetryAfter reads a Retry-After header given in seconds.
func parseRetryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
