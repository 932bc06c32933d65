package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/minutes/internal/svcctx"
)

// MetricsEndpoint handles GET /metrics in the Prometheus text format.
type MetricsEndpoint struct{}

func (e *MetricsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/metrics", e.handler
}

func (e *MetricsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	svcctx.MetricsFrom(r.Context()).Handler().ServeHTTP(w, r)
}

// Command is nil: metrics are scraped, not read from the CLI.
func (e *MetricsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return nil
}
