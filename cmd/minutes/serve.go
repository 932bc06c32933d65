package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/minutes/internal/config"
	"github.com/jackzampolin/minutes/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Minutes server",
	Long: `Start the Minutes HTTP server.

Provider settings come from the config file and environment
(AZURE_OPENAI_API_KEY / OPENAI_API_KEY, OPENAI_MODEL, AZURE_OPENAI_ENDPOINT,
OPENAI_TEMPERATURE). Model, temperature and the transcript ceiling are
reloaded when the config file changes.

The server provides:
  - /health              - Liveness check (config, template, layout)
  - /status              - Provider and template status
  - /transform           - Transcript to minutes JSON plus base64 .docx
  - /transform/download  - Transcript to .docx attachment
  - /metrics             - Prometheus metrics
  - /swagger             - API documentation

Examples:
  minutes serve                    # Start on default port 8000
  minutes serve --port 3000        # Start on custom port
  minutes serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		mgr, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfg := mgr.Get()
		logger := newLogger(os.Stdout, cfg.LogLevel)
		if path := mgr.ConfigFileUsed(); path != "" {
			logger.Info("loaded config", "file", path)
		}
		mgr.WatchConfig()

		host, port := cfg.Server.Host, cfg.Server.Port
		if cmd.Flags().Changed("host") {
			host = serveHost
		}
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			ConfigManager: mgr,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to (overrides server.host)")
	serveCmd.Flags().StringVar(&servePort, "port", "8000", "Port to listen on (overrides server.port)")

	rootCmd.AddCommand(serveCmd)
}
