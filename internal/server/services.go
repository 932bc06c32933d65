package server

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jackzampolin/minutes/internal/config"
	"github.com/jackzampolin/minutes/internal/extraction"
	"github.com/jackzampolin/minutes/internal/metrics"
	"github.com/jackzampolin/minutes/internal/prompts"
	"github.com/jackzampolin/minutes/internal/prompts/minutes"
	"github.com/jackzampolin/minutes/internal/providers"
	"github.com/jackzampolin/minutes/internal/render"
	"github.com/jackzampolin/minutes/internal/svcctx"
)

// ServiceOptions configures NewServices.
type ServiceOptions struct {
	// Config is the source of the current configuration. Required.
	Config svcctx.ConfigSource
	// Provider overrides the provider built from config (e.g. a mock).
	Provider providers.Responder
	Metrics  *metrics.Recorder
	Logger   *slog.Logger
}

// NewServices builds the services shared by the HTTP server and the local
// extract command. Without a usable provider (no override and incomplete
// provider config) the returned services have a nil Extractor; callers
// decide whether that is fatal.
func NewServices(opts ServiceOptions) (*svcctx.Services, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("config source is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	cfg := opts.Config.Get()

	catalog := prompts.NewCatalog(opts.Logger)
	minutes.RegisterPrompts(catalog)

	s := &svcctx.Services{
		Config:   opts.Config,
		Provider: opts.Provider,
		Renderer: render.NewRenderer(cfg.Render.LayoutDir),
		Prompts:  catalog,
		Metrics:  opts.Metrics,
		Logger:   opts.Logger,
	}

	if s.Provider == nil {
		if err := cfg.Validate(); err != nil {
			opts.Logger.Warn("completion provider not configured, extraction disabled", "error", err)
			return s, nil
		}
		s.Provider = providers.NewOpenAIClient(providers.OpenAIConfig{
			APIKey:            cfg.OpenAI.ResolvedAPIKey(),
			BaseURL:           cfg.OpenAI.ResolvedBaseURL(),
			Timeout:           time.Duration(cfg.OpenAI.TimeoutSeconds) * time.Second,
			RequestsPerMinute: cfg.OpenAI.RequestsPerMinute,
		})
	}

	ex, err := extraction.New(extraction.Config{
		Client:   s.Provider,
		Settings: ExtractionSettings(cfg),
		Logger:   opts.Logger,
		Metrics:  opts.Metrics,
	})
	if err != nil {
		return nil, err
	}
	s.Extractor = ex

	opts.Logger.Info("extraction ready",
		"provider", s.Provider.Name(),
		"model", cfg.OpenAI.Model,
		"base_url", cfg.OpenAI.ResolvedBaseURL(),
		"max_transcript_chars", ex.Settings().MaxTranscriptChars)
	return s, nil
}

// ExtractionSettings maps configuration onto the extractor's reloadable
// settings.
func ExtractionSettings(cfg *config.Config) extraction.Settings {
	return extraction.Settings{
		Model:              cfg.OpenAI.Model,
		Temperature:        cfg.OpenAI.TemperatureValue(),
		MaxTranscriptChars: cfg.Extraction.MaxTranscriptChars,
	}
}
