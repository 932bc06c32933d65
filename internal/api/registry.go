package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
)

// Registry holds all registered endpoints.
type Registry struct {
	endpoints []Endpoint
}

// NewRegistry creates a new endpoint registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an endpoint to the registry.
func (r *Registry) Register(ep Endpoint) {
	r.endpoints = append(r.endpoints, ep)
}

// RegisterRoutes registers all endpoint HTTP routes with the given router.
func (r *Registry) RegisterRoutes(router chi.Router) {
	for _, ep := range r.endpoints {
		method, path, handler := ep.Route()
		router.Method(method, path, handler)
	}
}

// BuildCommands returns a cobra.Command tree for all registered endpoints.
// Endpoints without a command (Command returns nil) are HTTP-only.
// getServerURL is called at runtime to get the server URL.
func (r *Registry) BuildCommands(getServerURL func() string) *cobra.Command {
	apiCmd := &cobra.Command{
		Use:   "api",
		Short: "Commands that call the running server",
		Long: `API commands call the running minutes server via HTTP.

These commands require a running server (minutes serve).
Use --server to specify a custom server URL.

Examples:
  minutes api health                          # Check server health
  minutes api templates list                  # List minutes templates
  minutes api transform meeting.vtt \
      --project "Riverside" --date 03/06/2025   # Extract minutes from a transcript`,
	}

	groups := map[string]*cobra.Command{}
	for _, ep := range r.endpoints {
		cmd := ep.Command(getServerURL)
		if cmd == nil {
			continue
		}
		if g, ok := ep.(Grouped); ok {
			parent, exists := groups[g.Group()]
			if !exists {
				parent = &cobra.Command{Use: g.Group(), Short: g.Group() + " commands"}
				groups[g.Group()] = parent
				apiCmd.AddCommand(parent)
			}
			parent.AddCommand(cmd)
			continue
		}
		apiCmd.AddCommand(cmd)
	}

	return apiCmd
}

// Endpoints returns all registered endpoints.
func (r *Registry) Endpoints() []Endpoint {
	return r.endpoints
}
