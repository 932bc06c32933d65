package endpoints

import (
	"github.com/jackzampolin/minutes/internal/api"
)

// All returns all endpoint instances.
func All() []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&StatusEndpoint{},

		// Transform endpoints
		&TransformEndpoint{},
		&TransformDownloadEndpoint{},

		// Template catalog
		&ListTemplatesEndpoint{},
		&GetTemplateEndpoint{},

		// Prompt catalog
		&ListPromptsEndpoint{},
		&GetPromptEndpoint{},

		// Observability and docs
		&MetricsEndpoint{},
		&SwaggerEndpoint{},
		&SwaggerUIEndpoint{},
	}
}
