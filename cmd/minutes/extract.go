package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/minutes/internal/api"
	"github.com/jackzampolin/minutes/internal/config"
	"github.com/jackzampolin/minutes/internal/extraction"
	"github.com/jackzampolin/minutes/internal/meeting"
	"github.com/jackzampolin/minutes/internal/providers"
	"github.com/jackzampolin/minutes/internal/server"
	"github.com/jackzampolin/minutes/internal/templates"
	"github.com/jackzampolin/minutes/internal/transcript"
)

var (
	extractTemplate string
	extractMeta     meeting.Meta
	extractDocx     string
	extractMock     string
)

var extractCmd = &cobra.Command{
	Use:   "extract <transcript>",
	Short: "Extract minutes from a local transcript without a server",
	Long: `Extract minutes from a .docx, .vtt or .txt transcript using the configured
provider and print them. With --docx the rendered document is written too.

--mock-response answers every provider call with the contents of a file,
which is useful for checking layouts without spending tokens.

Examples:
  minutes extract meeting.vtt --project Riverside --date 03/06/2025
  minutes extract notes.txt --docx out/minutes.docx --mock-response minutes.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		mgr, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfg := mgr.Get()
		logger := newLogger(os.Stderr, cfg.LogLevel)

		var provider providers.Responder
		if extractMock != "" {
			canned, err := os.ReadFile(extractMock)
			if err != nil {
				return err
			}
			provider = providers.NewMockClient(string(canned))
		}

		services, err := server.NewServices(server.ServiceOptions{
			Config:   mgr,
			Provider: provider,
			Logger:   logger,
		})
		if err != nil {
			return err
		}
		if services.Extractor == nil {
			return cfg.Validate()
		}

		id := extractTemplate
		if id == "" {
			id = cfg.Extraction.DefaultTemplate
		}
		spec, err := templates.Lookup(id)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		text, err := transcript.Load(data, args[0])
		if err != nil {
			return err
		}

		result, err := services.Extractor.Extract(ctx, extraction.Request{
			Text:      text,
			Meta:      extractMeta,
			Template:  spec,
			RequestID: uuid.NewString(),
		})
		if err != nil {
			return err
		}

		if extractDocx != "" {
			doc, err := services.Renderer.Render(spec, result.Model)
			if err != nil {
				return fmt.Errorf("failed to render document: %w", err)
			}
			if _, err := api.SaveFile(extractDocx, doc); err != nil {
				return err
			}
			logger.Info("wrote document", "path", extractDocx, "bytes", len(doc))
		}
		return api.Output(result)
	},
}

func init() {
	flags := extractCmd.Flags()
	flags.StringVar(&extractTemplate, "template", "", "Template id (default: extraction.default_template)")
	flags.StringVar(&extractMeta.Project, "project", "", "Project name")
	flags.StringVar(&extractMeta.JobMinNo, "job-min-no", "", "Job / minute number")
	flags.StringVar(&extractMeta.Description, "description", "Progress Meeting", "Meeting description")
	flags.StringVar(&extractMeta.Date, "date", "", "Meeting date, kept verbatim")
	flags.StringVar(&extractMeta.Time, "time", "", "Meeting time, kept verbatim")
	flags.StringVar(&extractMeta.Location, "location", "", "Meeting location")
	flags.StringVar(&extractDocx, "docx", "", "Write the rendered document to this path")
	flags.StringVar(&extractMock, "mock-response", "", "Answer provider calls with this file instead of calling the API")

	rootCmd.AddCommand(extractCmd)
}
