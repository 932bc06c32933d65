package endpoints

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/minutes/internal/api"
	"github.com/jackzampolin/minutes/internal/prompts"
	"github.com/jackzampolin/minutes/internal/svcctx"
)

// PromptsListResponse contains all prompts.
type PromptsListResponse struct {
	Prompts []prompts.EmbeddedPrompt `json:"prompts"`
}

// ListPromptsEndpoint handles GET /api/prompts.
type ListPromptsEndpoint struct{}

func (e *ListPromptsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/prompts", e.handler
}

func (e *ListPromptsEndpoint) Group() string { return "prompts" }

// handler godoc
//
//	@Summary		List prompt templates
//	@Description	Embedded prompt templates with their variables and content hashes. Text is omitted unless full=true.
//	@Tags			prompts
//	@Produce		json
//	@Param			full	query		bool	false	"Include prompt text"
//	@Success		200		{object}	PromptsListResponse
//	@Router			/api/prompts [get]
func (e *ListPromptsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	catalog := svcctx.PromptsFrom(r.Context())
	if catalog == nil {
		writeError(w, http.StatusServiceUnavailable, "prompt catalog not initialized")
		return
	}

	full := r.URL.Query().Get("full") == "true"
	resp := PromptsListResponse{Prompts: []prompts.EmbeddedPrompt{}}
	for _, p := range catalog.All() {
		if !full {
			p.Text = ""
		}
		resp.Prompts = append(resp.Prompts, p)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (e *ListPromptsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List prompt templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			path := "/api/prompts"
			if full {
				path += "?full=true"
			}
			var resp PromptsListResponse
			if err := client.Get(cmd.Context(), path, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "Include prompt text")
	return cmd
}

// GetPromptEndpoint handles GET /api/prompts/{key}.
type GetPromptEndpoint struct{}

func (e *GetPromptEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/prompts/{key}", e.handler
}

func (e *GetPromptEndpoint) Group() string { return "prompts" }

// handler godoc
//
//	@Summary	Get a prompt template
//	@Tags		prompts
//	@Produce	json
//	@Param		key	path		string	true	"Prompt key, e.g. minutes.extract"
//	@Success	200	{object}	prompts.EmbeddedPrompt
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/prompts/{key} [get]
func (e *GetPromptEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	catalog := svcctx.PromptsFrom(r.Context())
	if catalog == nil {
		writeError(w, http.StatusServiceUnavailable, "prompt catalog not initialized")
		return
	}
	p, err := catalog.Get(chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (e *GetPromptEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Show a prompt template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp prompts.EmbeddedPrompt
			if err := client.Get(cmd.Context(), "/api/prompts/"+url.PathEscape(args[0]), &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
