// Package extraction turns transcript text into a validated meeting record.
//
// One Extract call makes at most two provider calls, strictly in sequence:
// the primary request and, when its output does not parse or validate, a
// single repair request. There is no other retry.
package extraction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/jackzampolin/minutes/internal/llmcall"
	"github.com/jackzampolin/minutes/internal/meeting"
	"github.com/jackzampolin/minutes/internal/metrics"
	"github.com/jackzampolin/minutes/internal/prompts"
	"github.com/jackzampolin/minutes/internal/prompts/minutes"
	"github.com/jackzampolin/minutes/internal/providers"
	"github.com/jackzampolin/minutes/internal/templates"
)

const (
	// DefaultMaxTranscriptChars is the input ceiling in characters (runes).
	DefaultMaxTranscriptChars = 150000

	promptPreviewRunes = 200

	kindExtract = "extract"
	kindRepair  = "repair"
)

// Settings are the values that may change on config reload.
type Settings struct {
	Model              string
	Temperature        *float64 // nil: not sent
	MaxTranscriptChars int
}

// Config configures an Extractor.
type Config struct {
	Client   providers.Responder
	Settings Settings
	Logger   *slog.Logger
	Metrics  *metrics.Recorder
	Calls    *llmcall.Recorder
}

// Extractor runs extractions against a single shared provider handle.
// It is safe for concurrent use; extractions share no mutable state.
type Extractor struct {
	client  providers.Responder
	logger  *slog.Logger
	metrics *metrics.Recorder
	calls   *llmcall.Recorder

	mu       sync.RWMutex
	settings Settings
}

// New creates an Extractor.
func New(cfg Config) (*Extractor, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("extraction: provider client is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Calls == nil {
		cfg.Calls = llmcall.NewRecorder(cfg.Logger, cfg.Metrics)
	}
	e := &Extractor{
		client:  cfg.Client,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
		calls:   cfg.Calls,
	}
	e.UpdateSettings(cfg.Settings)
	return e, nil
}

// UpdateSettings swaps model, temperature and ceiling for later extractions.
// In-flight extractions keep the settings they started with.
func (e *Extractor) UpdateSettings(s Settings) {
	if s.MaxTranscriptChars <= 0 {
		s.MaxTranscriptChars = DefaultMaxTranscriptChars
	}
	if s.Temperature != nil {
		t := *s.Temperature
		s.Temperature = &t
	}
	e.mu.Lock()
	e.settings = s
	e.mu.Unlock()
}

// Settings returns the current settings.
func (e *Extractor) Settings() Settings {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.settings
}

// Provider returns the provider name.
func (e *Extractor) Provider() string {
	return e.client.Name()
}

// Request is the input of one extraction.
type Request struct {
	Text      string
	Meta      meeting.Meta
	Template  *templates.TemplateSpec
	RequestID string
}

// Result is a successful extraction.
type Result struct {
	Model *meeting.Model `json:"minutes"`

	// Truncated is set when the transcript exceeded the ceiling and only
	// its prefix was sent.
	Truncated       bool `json:"truncated"`
	Repaired        bool `json:"repaired"`
	ProviderCalls   int  `json:"provider_calls"`
	TranscriptChars int  `json:"transcript_chars"`
}

// Extract runs the extraction. It returns either a fully validated model or
// an error, never a partial model.
func (e *Extractor) Extract(ctx context.Context, req Request) (*Result, error) {
	if req.Template == nil {
		return nil, fmt.Errorf("extraction: template is required")
	}
	s := e.Settings()
	start := time.Now()

	text, truncated, chars := truncate(req.Text, s.MaxTranscriptChars)
	logger := e.logger.With(
		"request_id", req.RequestID,
		"template_id", req.Template.ID,
		"transcript_chars", chars,
		"truncated", truncated,
	)
	if truncated {
		logger.Warn("transcript exceeds input ceiling, sending prefix only",
			"max_chars", s.MaxTranscriptChars)
	}

	prompt := minutes.Build(text, req.Meta, req.Template.Extraction, truncated)
	result := &Result{Truncated: truncated, TranscriptChars: chars}

	fail := func(err error, outcome string) (*Result, error) {
		if ctx.Err() != nil {
			outcome = metrics.OutcomeCancelled
		}
		logger.Error("extraction failed",
			"error", err,
			"provider_calls", result.ProviderCalls,
			"prompt_preview", minutes.Preview(prompt, promptPreviewRunes))
		e.metrics.Extraction(req.Template.ID, outcome, truncated, time.Since(start))
		return nil, err
	}

	resp, err := e.call(ctx, s, req.RequestID, kindExtract, minutes.ExtractPromptKey, prompt)
	result.ProviderCalls++
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrProviderCall, err), metrics.OutcomeProviderError)
	}

	raw, ok := resp.Text()
	if !ok {
		return fail(fmt.Errorf("%w: no text in response %s", ErrResponseFormat, resp.ID), metrics.OutcomeResponseFormat)
	}

	model, parseErr := decode(raw)
	if parseErr != nil {
		logger.Warn("extraction output invalid, requesting repair", "error", parseErr)

		repairPrompt := minutes.Repair(prompt, raw)
		resp, err = e.call(ctx, s, req.RequestID, kindRepair, minutes.RepairPromptKey, repairPrompt)
		result.ProviderCalls++
		result.Repaired = true
		if err != nil {
			return fail(fmt.Errorf("%w: repair call failed: %w", ErrExtractionParse, err), metrics.OutcomeParseFailure)
		}

		raw, ok = resp.Text()
		if !ok {
			return fail(fmt.Errorf("%w: repair call failed: no text in response %s", ErrExtractionParse, resp.ID), metrics.OutcomeParseFailure)
		}
		model, err = decode(raw)
		if err != nil {
			return fail(fmt.Errorf("%w: repair output invalid: %w", ErrExtractionParse, err), metrics.OutcomeParseFailure)
		}
	}

	// The caller's metadata is authoritative whatever the provider echoed.
	model.Meta = req.Meta
	normalizeSections(model, req.Template.Extraction, logger)
	result.Model = model

	outcome := metrics.OutcomeSuccess
	if result.Repaired {
		outcome = metrics.OutcomeRepaired
	}
	e.metrics.Extraction(req.Template.ID, outcome, truncated, time.Since(start))
	logger.Info("extraction complete",
		"provider_calls", result.ProviderCalls,
		"repaired", result.Repaired,
		"sections", len(model.Sections),
		"attendees", len(model.Attendees))
	return result, nil
}

// call issues one provider request and records it.
func (e *Extractor) call(ctx context.Context, s Settings, requestID, kind, promptKey, prompt string) (*providers.Response, error) {
	rec := llmcall.New(requestID, kind, promptKey, prompts.HashText(prompt))
	rec.Provider = e.client.Name()
	rec.Model = s.Model
	rec.Temperature = s.Temperature

	resp, err := e.client.Respond(ctx, &providers.ResponseRequest{
		Model:       s.Model,
		Input:       prompt,
		Format:      providers.FormatJSONObject,
		Temperature: s.Temperature,
		RequestID:   requestID,
	})
	if err == nil && resp == nil {
		err = errors.New("provider returned no response")
	}

	var text string
	if err == nil {
		rec.ResponseID = resp.ID
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
		text, _ = resp.Text()
	}
	rec.Finish(text, err)
	e.calls.Record(rec)

	return resp, err
}

// decode parses and validates one provider payload.
func decode(raw string) (*meeting.Model, error) {
	doc, err := providers.ParseJSON(raw)
	if err != nil {
		return nil, err
	}
	return meeting.Decode(doc)
}

// truncate keeps at most limit runes of text. It returns the kept text, whether
// anything was cut, and the original length in runes.
func truncate(text string, limit int) (string, bool, int) {
	n := utf8.RuneCountInString(text)
	if n <= limit {
		return text, false, n
	}
	return string([]rune(text)[:limit]), true, n
}
