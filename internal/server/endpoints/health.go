package endpoints

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/minutes/internal/api"
	"github.com/jackzampolin/minutes/internal/providers"
	"github.com/jackzampolin/minutes/internal/svcctx"
	"github.com/jackzampolin/minutes/internal/templates"
)

// HealthResponse is the response for health check endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthEndpoint handles GET /health.
type HealthEndpoint struct{}

func (e *HealthEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/health", e.handler
}

// handler godoc
//
//	@Summary		Liveness check
//	@Description	Reports whether provider credentials are configured and the default template and its layout resolve.
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse
//	@Router			/health [get]
func (e *HealthEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	if err := checkHealth(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "error", Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func checkHealth(ctx context.Context) error {
	cfg := svcctx.ConfigFrom(ctx)
	if cfg == nil {
		return errors.New("configuration not loaded")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	id := cfg.Extraction.DefaultTemplate
	if id == "" {
		id = templates.DefaultID
	}
	spec, err := templates.Lookup(id)
	if err != nil {
		return err
	}
	if r := svcctx.RendererFrom(ctx); r == nil || !r.HasLayout(spec.Document) {
		return fmt.Errorf("document layout %q not found", spec.Document)
	}
	return nil
}

func (e *HealthEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp HealthResponse
			if err := client.Get(cmd.Context(), "/health", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// StatusResponse is the detailed status response.
type StatusResponse struct {
	Server             string   `json:"server"`
	Provider           string   `json:"provider,omitempty"`
	Model              string   `json:"model"`
	BaseURL            string   `json:"base_url"`
	MaxTranscriptChars int      `json:"max_transcript_chars"`
	DefaultTemplate    string   `json:"default_template"`
	Templates          []string `json:"templates"`
	Extraction         string   `json:"extraction"`
	ProviderHealth     string   `json:"provider_health,omitempty"`
	ProviderError      string   `json:"provider_error,omitempty"`
}

// StatusEndpoint handles GET /status.
type StatusEndpoint struct{}

func (e *StatusEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/status", e.handler
}

// handler godoc
//
//	@Summary		Server status
//	@Description	Provider, model, input ceiling and templates. With check=true the provider is probed.
//	@Tags			health
//	@Produce		json
//	@Param			check	query		bool	false	"Probe the completion provider"
//	@Success		200		{object}	StatusResponse
//	@Router			/status [get]
func (e *StatusEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := StatusResponse{
		Server:     "running",
		Extraction: "disabled",
	}

	if cfg := svcctx.ConfigFrom(ctx); cfg != nil {
		resp.Model = cfg.OpenAI.Model
		resp.BaseURL = cfg.OpenAI.ResolvedBaseURL()
		resp.MaxTranscriptChars = cfg.Extraction.MaxTranscriptChars
		resp.DefaultTemplate = cfg.Extraction.DefaultTemplate
	}
	for _, spec := range templates.List() {
		resp.Templates = append(resp.Templates, spec.ID)
	}

	if ex := svcctx.ExtractorFrom(ctx); ex != nil {
		resp.Extraction = "ready"
		resp.Provider = ex.Provider()
		settings := ex.Settings()
		resp.Model = settings.Model
		resp.MaxTranscriptChars = settings.MaxTranscriptChars
	}

	if r.URL.Query().Get("check") == "true" {
		hc, ok := svcctx.ProviderFrom(ctx).(providers.HealthChecker)
		if !ok {
			resp.ProviderHealth = "unsupported"
		} else if err := hc.HealthCheck(ctx); err != nil {
			resp.ProviderHealth = "unhealthy"
			resp.ProviderError = err.Error()
		} else {
			resp.ProviderHealth = "healthy"
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *StatusEndpoint) Command(getServerURL func() string) *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Get detailed server status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			path := "/status"
			if check {
				path += "?check=true"
			}
			var resp StatusResponse
			if err := client.Get(cmd.Context(), path, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "Probe the completion provider")
	return cmd
}
