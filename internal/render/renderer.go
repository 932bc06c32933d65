// Package render fills a document layout from a meeting record and packages
// the result as a .docx file.
//
// Layouts are text/template files producing WordprocessingML body markup.
// A layout named after the template's document is looked up in the layout
// directory first, then among the layouts built into the binary.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/jackzampolin/minutes/internal/docx"
	"github.com/jackzampolin/minutes/internal/meeting"
	"github.com/jackzampolin/minutes/internal/templates"
)

// ErrTemplateNotFound is returned when no layout exists for a document.
var ErrTemplateNotFound = errors.New("document layout not found")

const layoutExt = ".xml.tmpl"

//go:embed layouts/*.xml.tmpl
var builtinLayouts embed.FS

// Renderer renders meeting records to .docx.
type Renderer struct {
	// LayoutDir holds branded layouts that override the built-in ones.
	// Empty means built-in layouts only.
	LayoutDir string
}

// NewRenderer creates a renderer reading overrides from layoutDir.
func NewRenderer(layoutDir string) *Renderer {
	return &Renderer{LayoutDir: layoutDir}
}

// Render produces the .docx bytes for m using spec's document layout.
func (r *Renderer) Render(spec *templates.TemplateSpec, m *meeting.Model) ([]byte, error) {
	if spec == nil || m == nil {
		return nil, fmt.Errorf("render: template and model are required")
	}

	tmpl, err := r.layout(spec.Document)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, BuildContext(spec, m)); err != nil {
		return nil, fmt.Errorf("failed to execute layout %s: %w", spec.Document, err)
	}

	title := spec.Label
	if m.Meta.Project != "" {
		title = m.Meta.Project + " - " + spec.Label
	}
	data, err := docx.NewBuilder(docx.Document{Title: title, Body: body.String()}).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to package document: %w", err)
	}
	return data, nil
}

// HasLayout reports whether a layout exists for document.
func (r *Renderer) HasLayout(document string) bool {
	_, err := r.source(document)
	return err == nil
}

func (r *Renderer) layout(document string) (*template.Template, error) {
	src, err := r.source(document)
	if err != nil {
		return nil, err
	}
	funcs := docx.Funcs()
	funcs["person"] = personLine
	tmpl, err := template.New(document).Funcs(funcs).Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout %s: %w", document, err)
	}
	return tmpl, nil
}

func (r *Renderer) source(document string) ([]byte, error) {
	if document == "" || strings.ContainsAny(document, `/\`) || strings.Contains(document, "..") {
		return nil, fmt.Errorf("%w: invalid document name %q", ErrTemplateNotFound, document)
	}
	name := document + layoutExt

	if r != nil && r.LayoutDir != "" {
		data, err := os.ReadFile(filepath.Join(r.LayoutDir, name))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read layout %s: %w", name, err)
		}
	}

	data, err := builtinLayouts.ReadFile("layouts/" + name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, document)
	}
	return data, nil
}

// DownloadFilename is the attachment name for a rendered document.
func DownloadFilename(meta meeting.Meta) string {
	return "meeting_minutes_" + strings.ReplaceAll(meta.Date, "/", "-") + ".docx"
}
