package endpoints

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/minutes/internal/api"
	"github.com/jackzampolin/minutes/internal/metrics"
	"github.com/jackzampolin/minutes/internal/render"
)

// TruncatedHeader reports on downloads whether the transcript was cut to
// the input ceiling.
const TruncatedHeader = "X-Minutes-Truncated"

// TransformDownloadEndpoint handles POST /transform/download.
type TransformDownloadEndpoint struct{}

func (e *TransformDownloadEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/transform/download", e.handler
}

// handler godoc
//
//	@Summary		Extract meeting minutes as a document
//	@Description	Same inputs as /transform; responds with the rendered .docx as an attachment.
//	@Tags			transform
//	@Accept			multipart/form-data
//	@Produce		application/vnd.openxmlformats-officedocument.wordprocessingml.document
//	@Param			template_id	formData	string	false	"Template id (defaults to the configured default)"
//	@Param			project		formData	string	true	"Project name"
//	@Param			job_min_no	formData	string	true	"Job / minute number"
//	@Param			description	formData	string	false	"Meeting description"	default(Progress Meeting)
//	@Param			date		formData	string	true	"Meeting date, kept verbatim"
//	@Param			time		formData	string	true	"Meeting time, kept verbatim"
//	@Param			location	formData	string	true	"Meeting location"
//	@Param			file		formData	file	true	"Transcript file"
//	@Success		200			{file}		binary
//	@Failure		400			{object}	ErrorResponse
//	@Failure		502			{object}	ErrorResponse
//	@Failure		503			{object}	ErrorResponse
//	@Router			/transform/download [post]
func (e *TransformDownloadEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	out := transform(w, r, metrics.ModeDownload)
	if out == nil {
		return
	}
	h := w.Header()
	h.Set("Content-Type", docxContentType)
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", render.DownloadFilename(out.Result.Model.Meta)))
	h.Set("Content-Length", strconv.Itoa(len(out.Docx)))
	h.Set("X-Request-Id", out.RequestID)
	h.Set(TruncatedHeader, strconv.FormatBool(out.Result.Truncated))
	w.WriteHeader(http.StatusOK)
	w.Write(out.Docx)
}

func (e *TransformDownloadEndpoint) Command(getServerURL func() string) *cobra.Command {
	var form transformFlags
	var outPath string
	cmd := &cobra.Command{
		Use:   "download <transcript>",
		Short: "Extract minutes and save the rendered document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			client := api.NewClient(getServerURL())
			data, header, err := client.Download(cmd.Context(), "/transform/download", form.fields(), form.upload(f, args[0]))
			if err != nil {
				return err
			}

			path := outPath
			if path == "" {
				path = attachmentName(header.Get("Content-Disposition"))
			}
			saved, err := api.SaveFile(path, data)
			if err != nil {
				return err
			}
			if header.Get(TruncatedHeader) == "true" {
				cmd.PrintErrln("warning: transcript was truncated before extraction")
			}
			return api.Output(saved)
		},
	}
	form.register(cmd)
	cmd.Flags().StringVarP(&outPath, "out", "O", "", "Output path (default: server-supplied filename)")
	return cmd
}

// attachmentName returns the base name from a Content-Disposition header,
// or a fixed fallback.
func attachmentName(disposition string) string {
	_, params, err := mime.ParseMediaType(disposition)
	if err == nil && params["filename"] != "" {
		return filepath.Base(params["filename"])
	}
	return "meeting_minutes.docx"
}
