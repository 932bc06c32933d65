package endpoints

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/minutes/internal/api"
	"github.com/jackzampolin/minutes/internal/extraction"
	"github.com/jackzampolin/minutes/internal/meeting"
	"github.com/jackzampolin/minutes/internal/metrics"
	"github.com/jackzampolin/minutes/internal/svcctx"
	"github.com/jackzampolin/minutes/internal/templates"
	"github.com/jackzampolin/minutes/internal/transcript"
)

const (
	// maxUploadBytes bounds the multipart form held in memory.
	maxUploadBytes = 32 << 20

	// DefaultDescription is used when the form omits description.
	DefaultDescription = "Progress Meeting"

	docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// TransformResponse is the JSON result of POST /transform.
type TransformResponse struct {
	RequestID  string         `json:"request_id"`
	Minutes    *meeting.Model `json:"minutes"`
	DocxBase64 string         `json:"docx_base64"`
	Truncated  bool           `json:"truncated"`
}

// transformInput is a parsed transform form.
type transformInput struct {
	Spec     *templates.TemplateSpec
	Meta     meeting.Meta
	Filename string
	Data     []byte
}

// transformOutput is a completed transform.
type transformOutput struct {
	RequestID string
	Result    *extraction.Result
	Docx      []byte
}

// requiredFields must be present in the form; description may be omitted.
var requiredFields = []string{"project", "job_min_no", "date", "time", "location"}

// parseTransformForm reads the multipart form shared by both transform
// routes. An empty template_id falls back to the configured default.
func parseTransformForm(r *http.Request) (*transformInput, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidForm, err)
	}
	form := r.MultipartForm
	if form == nil {
		return nil, fmt.Errorf("%w: multipart form required", errInvalidForm)
	}

	value := func(key string) (string, bool) {
		v, ok := form.Value[key]
		if !ok || len(v) == 0 {
			return "", false
		}
		return v[0], true
	}

	var missing []string
	for _, key := range requiredFields {
		if _, ok := value(key); !ok {
			missing = append(missing, key)
		}
	}
	files := form.File["file"]
	if len(files) == 0 {
		missing = append(missing, "file")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing form fields: %s", errInvalidForm, strings.Join(missing, ", "))
	}

	templateID, _ := value("template_id")
	if templateID == "" {
		if cfg := svcctx.ConfigFrom(r.Context()); cfg != nil {
			templateID = cfg.Extraction.DefaultTemplate
		}
	}
	if templateID == "" {
		templateID = templates.DefaultID
	}
	spec, err := templates.Lookup(templateID)
	if err != nil {
		return nil, err
	}

	in := &transformInput{Spec: spec, Filename: files[0].Filename}
	in.Meta.Project, _ = value("project")
	in.Meta.JobMinNo, _ = value("job_min_no")
	in.Meta.Date, _ = value("date")
	in.Meta.Time, _ = value("time")
	in.Meta.Location, _ = value("location")
	in.Meta.Description = DefaultDescription
	if d, ok := value("description"); ok {
		in.Meta.Description = d
	}

	f, err := files[0].Open()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open upload: %v", errInvalidForm, err)
	}
	defer f.Close()
	if in.Data, err = io.ReadAll(f); err != nil {
		return nil, fmt.Errorf("%w: failed to read upload: %v", errInvalidForm, err)
	}
	return in, nil
}

// runTransform loads the transcript, extracts minutes and renders the
// document. It either returns both a model and a document, or an error.
// Input errors are reported before a missing provider.
func runTransform(ctx context.Context, in *transformInput) (*transformOutput, error) {
	text, err := transcript.Load(in.Data, in.Filename)
	if err != nil {
		return nil, err
	}

	extractor, renderer := svcctx.ExtractorFrom(ctx), svcctx.RendererFrom(ctx)
	if extractor == nil || renderer == nil {
		return nil, errNotConfigured
	}

	out := &transformOutput{RequestID: uuid.NewString()}
	out.Result, err = extractor.Extract(ctx, extraction.Request{
		Text:      text,
		Meta:      in.Meta,
		Template:  in.Spec,
		RequestID: out.RequestID,
	})
	if err != nil {
		return nil, err
	}

	out.Docx, err = renderer.Render(in.Spec, out.Result.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}
	return out, nil
}

// transform parses, runs and logs one transform request. On failure it has
// already written the error response and returns nil.
func transform(w http.ResponseWriter, r *http.Request, mode string) *transformOutput {
	ctx := r.Context()
	logger := svcctx.LoggerFrom(ctx)
	rec := svcctx.MetricsFrom(ctx)

	in, err := parseTransformForm(r)
	if err == nil {
		var out *transformOutput
		if out, err = runTransform(ctx, in); err == nil {
			rec.Transform(mode, http.StatusOK)
			return out
		}
	}

	status := statusFor(err)
	if logger != nil {
		logger.Error("transform failed", "mode", mode, "status", status, "error", err)
	}
	rec.Transform(mode, status)
	writeError(w, status, err.Error())
	return nil
}

// TransformEndpoint handles POST /transform.
type TransformEndpoint struct{}

func (e *TransformEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/transform", e.handler
}

// handler godoc
//
//	@Summary		Extract meeting minutes
//	@Description	Extracts structured minutes from an uploaded transcript (.docx, .vtt, .txt) and returns them with the rendered document.
//	@Tags			transform
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			template_id	formData	string	false	"Template id (defaults to the configured default)"
//	@Param			project		formData	string	true	"Project name"
//	@Param			job_min_no	formData	string	true	"Job / minute number"
//	@Param			description	formData	string	false	"Meeting description"	default(Progress Meeting)
//	@Param			date		formData	string	true	"Meeting date, kept verbatim"
//	@Param			time		formData	string	true	"Meeting time, kept verbatim"
//	@Param			location	formData	string	true	"Meeting location"
//	@Param			file		formData	file	true	"Transcript file"
//	@Success		200			{object}	TransformResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		502			{object}	ErrorResponse
//	@Failure		503			{object}	ErrorResponse
//	@Router			/transform [post]
func (e *TransformEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	out := transform(w, r, metrics.ModeJSON)
	if out == nil {
		return
	}
	writeJSON(w, http.StatusOK, TransformResponse{
		RequestID:  out.RequestID,
		Minutes:    out.Result.Model,
		DocxBase64: base64.StdEncoding.EncodeToString(out.Docx),
		Truncated:  out.Result.Truncated,
	})
}

func (e *TransformEndpoint) Command(getServerURL func() string) *cobra.Command {
	var form transformFlags
	var docxPath string
	cmd := &cobra.Command{
		Use:   "transform <transcript>",
		Short: "Extract minutes from a transcript file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			client := api.NewClient(getServerURL())
			var resp TransformResponse
			if err := client.PostMultipart(cmd.Context(), "/transform", form.fields(), form.upload(f, args[0]), &resp); err != nil {
				return err
			}

			if docxPath != "" {
				data, err := base64.StdEncoding.DecodeString(resp.DocxBase64)
				if err != nil {
					return fmt.Errorf("invalid docx_base64 in response: %w", err)
				}
				if _, err := api.SaveFile(docxPath, data); err != nil {
					return err
				}
				cmd.PrintErrf("Wrote %s\n", docxPath)
			}
			resp.DocxBase64 = ""
			return api.Output(resp)
		},
	}
	form.register(cmd)
	cmd.Flags().StringVar(&docxPath, "docx", "", "Also write the rendered document to this path")
	return cmd
}

// transformFlags are the form fields as CLI flags.
type transformFlags struct {
	TemplateID  string
	Project     string
	JobMinNo    string
	Description string
	Date        string
	Time        string
	Location    string
}

func (f *transformFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.TemplateID, "template", "", "Template id (server default when empty)")
	flags.StringVar(&f.Project, "project", "", "Project name")
	flags.StringVar(&f.JobMinNo, "job-min-no", "", "Job / minute number")
	flags.StringVar(&f.Description, "description", DefaultDescription, "Meeting description")
	flags.StringVar(&f.Date, "date", "", "Meeting date")
	flags.StringVar(&f.Time, "time", "", "Meeting time")
	flags.StringVar(&f.Location, "location", "", "Meeting location")
}

func (f *transformFlags) fields() map[string]string {
	return map[string]string{
		"template_id": f.TemplateID,
		"project":     f.Project,
		"job_min_no":  f.JobMinNo,
		"description": f.Description,
		"date":        f.Date,
		"time":        f.Time,
		"location":    f.Location,
	}
}

func (f *transformFlags) upload(r io.Reader, path string) api.Upload {
	return api.Upload{Field: "file", Filename: filepath.Base(path), Content: r}
}
