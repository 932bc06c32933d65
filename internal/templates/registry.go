// Package templates is the static catalog of minutes templates.
//
// The catalog is embedded at build time and parsed once on first use. It is
// read-only afterwards and safe for concurrent lookups.
package templates

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultID is the template used when a caller does not name one.
const DefaultID = "progress_minutes_v1"

// ErrUnknownTemplate is returned by Lookup for ids missing from the catalog.
var ErrUnknownTemplate = errors.New("unknown template")

//go:embed catalog.yaml
var catalogYAML []byte

// SectionSpec declares one section extraction must emit.
type SectionSpec struct {
	Code    string   `yaml:"code" json:"code"`
	Title   string   `yaml:"title" json:"title"`
	Aliases []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
}

// ExtractionSpec is what the prompt builder needs from a template.
type ExtractionSpec struct {
	Sections     []SectionSpec `yaml:"sections" json:"sections"`
	WantsActions bool          `yaml:"wants_actions" json:"wants_actions"`
	WantsDates   bool          `yaml:"wants_dates" json:"wants_dates"`
	// DatesSection is the code of the section holding contract dates.
	DatesSection string `yaml:"dates_section,omitempty" json:"dates_section,omitempty"`
}

// Section returns the declared section with the given code.
func (e ExtractionSpec) Section(code string) (SectionSpec, bool) {
	for _, s := range e.Sections {
		if s.Code == code {
			return s, true
		}
	}
	return SectionSpec{}, false
}

// TemplateSpec is a catalog entry.
type TemplateSpec struct {
	ID         string         `yaml:"id" json:"id"`
	Label      string         `yaml:"label" json:"label"`
	Document   string         `yaml:"document" json:"document"`
	Extraction ExtractionSpec `yaml:"extraction" json:"extraction"`
}

type catalog struct {
	Templates []TemplateSpec `yaml:"templates"`
}

var (
	loadOnce sync.Once
	ordered  []TemplateSpec
	byID     map[string]*TemplateSpec
)

func load() {
	loadOnce.Do(func() {
		specs, err := parseCatalog(catalogYAML)
		if err != nil {
			panic(fmt.Sprintf("templates: %v", err))
		}
		ordered = specs
		byID = make(map[string]*TemplateSpec, len(specs))
		for i := range ordered {
			byID[ordered[i].ID] = &ordered[i]
		}
	})
}

func parseCatalog(data []byte) ([]TemplateSpec, error) {
	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[string]bool, len(c.Templates))
	for _, t := range c.Templates {
		if t.ID == "" {
			return nil, fmt.Errorf("template with empty id")
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("duplicate template id %q", t.ID)
		}
		seen[t.ID] = true

		codes := make(map[string]bool, len(t.Extraction.Sections))
		for _, s := range t.Extraction.Sections {
			if s.Code == "" || s.Title == "" {
				return nil, fmt.Errorf("template %q: section needs code and title", t.ID)
			}
			if codes[s.Code] {
				return nil, fmt.Errorf("template %q: duplicate section code %q", t.ID, s.Code)
			}
			codes[s.Code] = true
		}
		if ds := t.Extraction.DatesSection; ds != "" && !codes[ds] {
			return nil, fmt.Errorf("template %q: dates_section %q is not a declared section", t.ID, ds)
		}
	}
	return c.Templates, nil
}

// Lookup returns the template with the given id.
func Lookup(id string) (*TemplateSpec, error) {
	load()
	t, ok := byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, id)
	}
	return t, nil
}

// List returns every template in catalog order.
func List() []TemplateSpec {
	load()
	out := make([]TemplateSpec, len(ordered))
	copy(out, ordered)
	return out
}
