// Package llmcall records completion-provider calls for traceability.
// Every call is logged with its prompt key and hash, the model used, and
// a bounded preview of the response.
package llmcall

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// responsePreviewRunes bounds how much of a response is kept on a record.
const responsePreviewRunes = 200

// Call represents one provider call.
type Call struct {
	ID        string    `json:"id"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	LatencyMs int       `json:"latency_ms"`

	// Kind is "extract" or "repair".
	Kind string `json:"kind"`

	// Prompt traceability
	PromptKey  string `json:"prompt_key"`
	PromptHash string `json:"prompt_hash,omitempty"`

	Provider    string   `json:"provider"`
	Model       string   `json:"model"`
	Temperature *float64 `json:"temperature,omitempty"`

	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`

	ResponseID      string `json:"response_id,omitempty"`
	ResponsePreview string `json:"response_preview,omitempty"`

	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// New starts a call record.
func New(requestID, kind, promptKey, promptHash string) *Call {
	return &Call{
		ID:         uuid.New().String(),
		RequestID:  requestID,
		Timestamp:  time.Now(),
		Kind:       kind,
		PromptKey:  promptKey,
		PromptHash: promptHash,
	}
}

// Finish stamps latency, outcome and a bounded response preview.
func (c *Call) Finish(response string, err error) {
	c.LatencyMs = int(time.Since(c.Timestamp).Milliseconds())
	c.Success = err == nil
	if err != nil {
		c.Error = err.Error()
	}
	r := []rune(response)
	if len(r) > responsePreviewRunes {
		r = r[:responsePreviewRunes]
	}
	c.ResponsePreview = string(r)
}

// LogAttrs returns the record as slog attributes.
func (c *Call) LogAttrs() []any {
	attrs := []any{
		slog.String("call_id", c.ID),
		slog.String("request_id", c.RequestID),
		slog.String("kind", c.Kind),
		slog.String("prompt_key", c.PromptKey),
		slog.String("provider", c.Provider),
		slog.String("model", c.Model),
		slog.Int("latency_ms", c.LatencyMs),
		slog.Int("input_tokens", c.InputTokens),
		slog.Int("output_tokens", c.OutputTokens),
		slog.Bool("success", c.Success),
	}
	if c.Temperature != nil {
		attrs = append(attrs, slog.Float64("temperature", *c.Temperature))
	}
	if c.Error != "" {
		attrs = append(attrs, slog.String("error", c.Error))
	}
	return attrs
}
