package render

import (
	"github.com/jackzampolin/minutes/internal/meeting"
	"github.com/jackzampolin/minutes/internal/templates"
)

// Distribution is the fixed distribution line printed on every document.
const Distribution = "As above"

// Item is one row of the minutes table.
type Item struct {
	Code          string
	Body          string // title, then a blank line and the notes when present
	ActionSummary string
	ActionDue     string
}

// Context is the data a layout is executed against.
type Context struct {
	Title string

	Project     string
	JobMinNo    string
	Description string
	Date        string
	Time        string
	Location    string

	Present      []meeting.Person
	Apologies    []meeting.Person
	Distribution string

	ContractCommencement string
	Section1Completion   string
	Section2Completion   string
	Section3Completion   string
	PracticalCompletion  string

	Items []Item
}

// BuildContext flattens a meeting record into layout fields. Only the first
// action of a section reaches the document.
func BuildContext(spec *templates.TemplateSpec, m *meeting.Model) Context {
	dates := m.ContractDates(spec.Extraction.DatesSection)

	ctx := Context{
		Title:        spec.Label,
		Project:      m.Meta.Project,
		JobMinNo:     m.Meta.JobMinNo,
		Description:  m.Meta.Description,
		Date:         m.Meta.Date,
		Time:         m.Meta.Time,
		Location:     m.Meta.Location,
		Present:      m.Attendees,
		Apologies:    m.Apologies,
		Distribution: Distribution,

		ContractCommencement: dates.ContractCommencement,
		Section1Completion:   dates.Section1Completion,
		Section2Completion:   dates.Section2Completion,
		Section3Completion:   dates.Section3Completion,
		PracticalCompletion:  dates.PracticalCompletion,

		Items: make([]Item, 0, len(m.Sections)),
	}

	for _, s := range m.Sections {
		item := Item{Code: s.Code, Body: s.Title}
		if s.Notes != "" {
			item.Body += "\n\n" + s.Notes
		}
		if a, ok := s.PrimaryAction(); ok {
			item.ActionSummary = a.Summary()
			item.ActionDue = a.DueDate
		}
		ctx.Items = append(ctx.Items, item)
	}
	return ctx
}

// personLine renders "name (company)" for attendee lists.
func personLine(p meeting.Person) string {
	if p.Company == "" {
		return p.Name
	}
	return p.Name + " (" + p.Company + ")"
}
