package endpoints

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/minutes/internal/api"
	"github.com/jackzampolin/minutes/internal/render"
	"github.com/jackzampolin/minutes/internal/svcctx"
	"github.com/jackzampolin/minutes/internal/templates"
)

// TemplateSummary is one row of the template list.
type TemplateSummary struct {
	ID        string   `json:"id"`
	Label     string   `json:"label"`
	Document  string   `json:"document"`
	Sections  []string `json:"sections"`
	HasLayout bool     `json:"has_layout"`
}

// TemplatesListResponse contains all templates.
type TemplatesListResponse struct {
	Default   string            `json:"default"`
	Templates []TemplateSummary `json:"templates"`
}

// ListTemplatesEndpoint handles GET /api/templates.
type ListTemplatesEndpoint struct{}

func (e *ListTemplatesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/templates", e.handler
}

func (e *ListTemplatesEndpoint) Group() string { return "templates" }

// handler godoc
//
//	@Summary	List minutes templates
//	@Tags		templates
//	@Produce	json
//	@Success	200	{object}	TemplatesListResponse
//	@Router		/api/templates [get]
func (e *ListTemplatesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	renderer := svcctx.RendererFrom(ctx)

	resp := TemplatesListResponse{Default: templates.DefaultID}
	if cfg := svcctx.ConfigFrom(ctx); cfg != nil && cfg.Extraction.DefaultTemplate != "" {
		resp.Default = cfg.Extraction.DefaultTemplate
	}
	for _, spec := range templates.List() {
		resp.Templates = append(resp.Templates, summarize(spec, renderer))
	}
	writeJSON(w, http.StatusOK, resp)
}

func summarize(spec templates.TemplateSpec, renderer *render.Renderer) TemplateSummary {
	s := TemplateSummary{
		ID:        spec.ID,
		Label:     spec.Label,
		Document:  spec.Document,
		HasLayout: renderer != nil && renderer.HasLayout(spec.Document),
	}
	for _, sec := range spec.Extraction.Sections {
		s.Sections = append(s.Sections, sec.Code+" "+sec.Title)
	}
	return s
}

func (e *ListTemplatesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List minutes templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp TemplatesListResponse
			if err := client.Get(cmd.Context(), "/api/templates", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// GetTemplateEndpoint handles GET /api/templates/{id}.
type GetTemplateEndpoint struct{}

func (e *GetTemplateEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/templates/{id}", e.handler
}

func (e *GetTemplateEndpoint) Group() string { return "templates" }

// handler godoc
//
//	@Summary	Get a minutes template
//	@Tags		templates
//	@Produce	json
//	@Param		id	path		string	true	"Template id"
//	@Success	200	{object}	templates.TemplateSpec
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/templates/{id} [get]
func (e *GetTemplateEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	spec, err := templates.Lookup(chi.URLParam(r, "id"))
	if errors.Is(err, templates.ErrUnknownTemplate) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, spec)
}

func (e *GetTemplateEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a template's sections and layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp templates.TemplateSpec
			if err := client.Get(cmd.Context(), "/api/templates/"+url.PathEscape(args[0]), &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
