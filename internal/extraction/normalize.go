package extraction

import (
	"log/slog"
	"strings"

	"github.com/jackzampolin/minutes/internal/meeting"
	"github.com/jackzampolin/minutes/internal/templates"
)

// normalizeSections rewrites m.Sections to exactly the template's sections,
// in template order. Produced sections are matched by code first, then by
// title or alias. Code and title always come from the template. Unmatched
// template sections are added empty; unmatched produced sections are dropped.
func normalizeSections(m *meeting.Model, spec templates.ExtractionSpec, logger *slog.Logger) {
	used := make([]bool, len(m.Sections))

	find := func(match func(meeting.Section) bool) (meeting.Section, bool) {
		for i, s := range m.Sections {
			if !used[i] && match(s) {
				used[i] = true
				return s, true
			}
		}
		return meeting.Section{}, false
	}

	out := make([]meeting.Section, 0, len(spec.Sections))
	var missing []string
	for _, want := range spec.Sections {
		got, ok := find(func(s meeting.Section) bool {
			return strings.TrimSpace(s.Code) == want.Code
		})
		if !ok {
			got, ok = find(func(s meeting.Section) bool {
				return titleMatches(s.Title, want)
			})
		}
		if !ok {
			missing = append(missing, want.Code)
		}

		got.Code = want.Code
		got.Title = want.Title
		if got.Actions == nil {
			got.Actions = []meeting.ActionItem{}
		}
		if !spec.WantsDates {
			got.Dates = nil
		}
		out = append(out, got)
	}

	var dropped []string
	for i, s := range m.Sections {
		if !used[i] {
			dropped = append(dropped, s.Code+":"+s.Title)
		}
	}

	if len(missing) > 0 || len(dropped) > 0 {
		logger.Info("normalized extracted sections",
			"missing", missing,
			"dropped", dropped)
	}
	m.Sections = out
}

func titleMatches(title string, want templates.SectionSpec) bool {
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" {
		return false
	}
	if t == strings.ToLower(want.Title) {
		return true
	}
	for _, a := range want.Aliases {
		if t == strings.ToLower(a) {
			return true
		}
	}
	return false
}
