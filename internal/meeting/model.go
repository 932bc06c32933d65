// Package meeting defines the structured meeting record produced by extraction.
//
// Dates and times are opaque strings throughout. Nothing in this package parses
// or reformats them; "24/06/2025" stays "24/06/2025".
package meeting

import "strings"

// Meta is the caller-supplied header of a meeting. It is never inferred from
// the transcript.
type Meta struct {
	Project     string `json:"project" yaml:"project"`
	JobMinNo    string `json:"job_min_no" yaml:"job_min_no"`
	Description string `json:"description" yaml:"description"`
	Date        string `json:"date" yaml:"date"`
	Time        string `json:"time" yaml:"time"`
	Location    string `json:"location" yaml:"location"`
}

// Person is an attendee or an apology.
type Person struct {
	Name     string `json:"name" yaml:"name"`
	Initials string `json:"initials" yaml:"initials"`
	Company  string `json:"company" yaml:"company"`
}

// ActionItem is a single follow-up recorded against a section.
type ActionItem struct {
	Action  string `json:"action" yaml:"action"`
	Owner   string `json:"owner" yaml:"owner"`
	DueDate string `json:"due_date" yaml:"due_date"`
}

// Summary renders the action as "<owner> – <action>", or just the action when
// nobody owns it.
func (a ActionItem) Summary() string {
	if strings.TrimSpace(a.Owner) == "" {
		return a.Action
	}
	return a.Owner + " – " + a.Action
}

// SectionDates holds the contract milestone dates.
type SectionDates struct {
	ContractCommencement string `json:"contract_commencement" yaml:"contract_commencement"`
	Section1Completion   string `json:"section1_completion" yaml:"section1_completion"`
	Section2Completion   string `json:"section2_completion" yaml:"section2_completion"`
	Section3Completion   string `json:"section3_completion" yaml:"section3_completion"`
	PracticalCompletion  string `json:"practical_completion" yaml:"practical_completion"`
}

// Section is one template-declared topic of the meeting.
type Section struct {
	Code    string        `json:"code" yaml:"code"`
	Title   string        `json:"title" yaml:"title"`
	Notes   string        `json:"notes" yaml:"notes"`
	Actions []ActionItem  `json:"actions" yaml:"actions"`
	Dates   *SectionDates `json:"dates" yaml:"dates"`
}

// PrimaryAction returns the first action of the section, if any.
func (s Section) PrimaryAction() (ActionItem, bool) {
	if len(s.Actions) == 0 {
		return ActionItem{}, false
	}
	return s.Actions[0], true
}

// Model is the validated meeting record.
type Model struct {
	Meta      Meta      `json:"meta" yaml:"meta"`
	Attendees []Person  `json:"attendees" yaml:"attendees"`
	Apologies []Person  `json:"apologies" yaml:"apologies"`
	Sections  []Section `json:"sections" yaml:"sections"`
}

// ContractDates picks the milestone dates used on the document cover.
//
// The section whose code equals preferCode wins when it carries dates. Next is
// the first dated section with "contract" in its title, then the first dated
// section of any kind. A model without dates yields the zero value.
func (m *Model) ContractDates(preferCode string) SectionDates {
	if preferCode != "" {
		for _, s := range m.Sections {
			if s.Code == preferCode && s.Dates != nil {
				return *s.Dates
			}
		}
	}
	for _, s := range m.Sections {
		if s.Dates != nil && strings.Contains(strings.ToLower(s.Title), "contract") {
			return *s.Dates
		}
	}
	for _, s := range m.Sections {
		if s.Dates != nil {
			return *s.Dates
		}
	}
	return SectionDates{}
}

// fillEmpty replaces nil slices with empty ones so the record always encodes
// as [] rather than null.
func (m *Model) fillEmpty() {
	if m.Attendees == nil {
		m.Attendees = []Person{}
	}
	if m.Apologies == nil {
		m.Apologies = []Person{}
	}
	if m.Sections == nil {
		m.Sections = []Section{}
	}
	for i := range m.Sections {
		if m.Sections[i].Actions == nil {
			m.Sections[i].Actions = []ActionItem{}
		}
	}
}
