// Package minutes builds the prompts sent to the completion provider for
// meeting-minutes extraction.
package minutes

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"strconv"
	"strings"
	"text/template"

	"github.com/jackzampolin/minutes/internal/meeting"
	"github.com/jackzampolin/minutes/internal/prompts"
	"github.com/jackzampolin/minutes/internal/templates"
)

//go:embed extract.tmpl
var extractPromptTmpl string

//go:embed repair.tmpl
var repairPromptTmpl string

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"aliases": func(a []string) string {
		if len(a) == 0 {
			return "none"
		}
		return strings.Join(a, ", ")
	},
}

var (
	extractTemplate = template.Must(template.New("extract").Funcs(funcs).Parse(extractPromptTmpl))
	repairTemplate  = template.Must(template.New("repair").Parse(repairPromptTmpl))
)

// Prompt keys
const (
	ExtractPromptKey = "minutes.extract"
	RepairPromptKey  = "minutes.repair"
)

type extractData struct {
	Meta       meeting.Meta
	Sections   []templates.SectionSpec
	Tasks      []string
	Example    string
	Transcript string
}

// Build renders the extraction prompt. It is a pure function of its inputs.
func Build(text string, meta meeting.Meta, spec templates.ExtractionSpec, truncated bool) string {
	data := extractData{
		Meta:       meta,
		Sections:   spec.Sections,
		Tasks:      tasks(spec, truncated),
		Example:    example(meta, spec),
		Transcript: text,
	}

	var buf bytes.Buffer
	if err := extractTemplate.Execute(&buf, data); err != nil {
		// The template is static and the data has no methods that fail.
		panic("minutes: extract template: " + err.Error())
	}
	return buf.String()
}

// Repair renders the prompt for the single repair call.
func Repair(originalPrompt, broken string) string {
	var buf bytes.Buffer
	data := struct{ OriginalPrompt, Broken string }{originalPrompt, broken}
	if err := repairTemplate.Execute(&buf, data); err != nil {
		panic("minutes: repair template: " + err.Error())
	}
	return buf.String()
}

func tasks(spec templates.ExtractionSpec, truncated bool) []string {
	t := []string{
		`List everyone present in "attendees" and everyone who sent apologies in "apologies". Use "" for initials or company that are not stated.`,
		`Include every predefined section exactly once, in the listed order, even when the transcript does not mention it. An empty section has "notes": "" and "actions": [].`,
		`Summarise what was discussed for each section in "notes".`,
		`Do not invent sections, people, actions or dates that are not in the transcript.`,
		`Copy dates and times exactly as written. Never reformat them (keep "24/06/2025", do not write "2025-06-24").`,
	}

	if spec.WantsActions {
		t = append(t, `Record follow-ups in the "actions" of the section they belong to, first action first. Set "owner" only when the transcript makes it clear, otherwise "". Set "due_date" only when a date is stated, otherwise "".`)
	} else {
		t = append(t, `Leave "actions" as [] for every section.`)
	}

	if spec.WantsDates {
		where := "the section that discusses contract dates"
		if s, ok := spec.Section(spec.DatesSection); ok {
			where = "section " + s.Code + " (" + s.Title + ")"
		}
		t = append(t, `Fill "dates" on `+where+` with any contract commencement, section 1/2/3 completion and practical completion dates mentioned, using "" for those not mentioned. Set "dates" to null on every other section.`)
	} else {
		t = append(t, `Set "dates" to null on every section.`)
	}

	if truncated {
		t = append(t, `The transcript was too long and has been cut off. Only its first part is shown below. Extract what is visible and do not guess at what follows.`)
	}
	return t
}

type exampleSection struct {
	Code    string                `json:"code"`
	Title   string                `json:"title"`
	Notes   string                `json:"notes"`
	Actions []meeting.ActionItem  `json:"actions"`
	Dates   *meeting.SectionDates `json:"dates"`
}

// example renders the worked JSON example for the given template.
func example(meta meeting.Meta, spec templates.ExtractionSpec) string {
	sections := make([]exampleSection, 0, len(spec.Sections))
	for i, s := range spec.Sections {
		es := exampleSection{Code: s.Code, Title: s.Title, Actions: []meeting.ActionItem{}}
		if i == 0 {
			es.Notes = "Summary of the discussion."
			if spec.WantsActions {
				es.Actions = []meeting.ActionItem{{Action: "Send revised drawings", Owner: "Sam", DueDate: "24/06/2025"}}
			}
		}
		if spec.WantsDates && s.Code == spec.DatesSection {
			es.Dates = &meeting.SectionDates{}
		}
		sections = append(sections, es)
	}

	doc := struct {
		Meta      meeting.Meta     `json:"meta"`
		Attendees []meeting.Person `json:"attendees"`
		Apologies []meeting.Person `json:"apologies"`
		Sections  []exampleSection `json:"sections"`
	}{
		Meta:      meta,
		Attendees: []meeting.Person{{Name: "Sam Smith", Initials: "SS", Company: "Acme Construction"}},
		Apologies: []meeting.Person{},
		Sections:  sections,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		panic("minutes: example: " + err.Error())
	}
	return strings.TrimRight(buf.String(), "\n")
}

// RegisterPrompts registers the minutes prompts with the catalog.
func RegisterPrompts(c *prompts.Catalog) {
	c.Register(prompts.EmbeddedPrompt{
		Key:         ExtractPromptKey,
		Text:        extractPromptTmpl,
		Description: "Meeting minutes extraction prompt (metadata, sections, tasks, JSON example, transcript)",
	})
	c.Register(prompts.EmbeddedPrompt{
		Key:         RepairPromptKey,
		Text:        repairPromptTmpl,
		Description: "Single repair prompt for malformed extraction output",
	})
}

// Preview returns at most n runes of a prompt for logging.
func Preview(prompt string, n int) string {
	r := []rune(prompt)
	if len(r) <= n {
		return prompt
	}
	return string(r[:n]) + "…(" + strconv.Itoa(len(r)-n) + " more)"
}
