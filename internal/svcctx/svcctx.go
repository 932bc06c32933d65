// Package svcctx provides service context for dependency injection via context.
// This package is separate from server to avoid import cycles with endpoints.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/jackzampolin/minutes/internal/config"
	"github.com/jackzampolin/minutes/internal/extraction"
	"github.com/jackzampolin/minutes/internal/metrics"
	"github.com/jackzampolin/minutes/internal/prompts"
	"github.com/jackzampolin/minutes/internal/providers"
	"github.com/jackzampolin/minutes/internal/render"
)

// ConfigSource returns the current configuration. *config.Manager
// implements it; the value may change between calls on hot reload.
type ConfigSource interface {
	Get() *config.Config
}

// Services holds all core services that flow through context.
// Components extract what they need via the individual extractors.
type Services struct {
	Config    ConfigSource
	Provider  providers.Responder
	Extractor *extraction.Extractor
	Renderer  *render.Renderer
	Prompts   *prompts.Catalog
	Metrics   *metrics.Recorder
	Logger    *slog.Logger
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// ConfigFrom extracts the current configuration from context.
func ConfigFrom(ctx context.Context) *config.Config {
	if s := ServicesFrom(ctx); s != nil && s.Config != nil {
		return s.Config.Get()
	}
	return nil
}

// ProviderFrom extracts the completion provider from context.
func ProviderFrom(ctx context.Context) providers.Responder {
	if s := ServicesFrom(ctx); s != nil {
		return s.Provider
	}
	return nil
}

// ExtractorFrom extracts the extraction orchestrator from context.
func ExtractorFrom(ctx context.Context) *extraction.Extractor {
	if s := ServicesFrom(ctx); s != nil {
		return s.Extractor
	}
	return nil
}

// RendererFrom extracts the document renderer from context.
func RendererFrom(ctx context.Context) *render.Renderer {
	if s := ServicesFrom(ctx); s != nil {
		return s.Renderer
	}
	return nil
}

// PromptsFrom extracts the prompt catalog from context.
func PromptsFrom(ctx context.Context) *prompts.Catalog {
	if s := ServicesFrom(ctx); s != nil {
		return s.Prompts
	}
	return nil
}

// MetricsFrom extracts the metrics recorder from context.
func MetricsFrom(ctx context.Context) *metrics.Recorder {
	if s := ServicesFrom(ctx); s != nil {
		return s.Metrics
	}
	return nil
}

// LoggerFrom extracts the logger from context.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil {
		return s.Logger
	}
	return nil
}
