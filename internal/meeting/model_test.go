package meeting

import (
	"errors"
	"testing"
)

const validDoc = `{
  "meta": {"project": "P", "job_min_no": "J1", "description": "D", "date": "01/02/2025", "time": "10:00", "location": "Site"},
  "attendees": [{"name": "Sam Smith", "initials": "SS", "company": null}],
  "sections": [
    {"code": "5", "title": "Design Matters", "notes": null, "actions": [{"action": "Send drawings", "owner": "Sam", "due_date": "24/06/2025"}], "dates": null},
    {"code": "6", "title": "Contract Dates", "notes": "", "actions": null, "dates": {"practical_completion": "01/12/2025"}}
  ]
}`

func TestDecode(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		m, err := Decode([]byte(validDoc))
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if m.Attendees[0].Company != "" {
			t.Errorf("null company decoded as %q, want empty", m.Attendees[0].Company)
		}
		if m.Apologies == nil || len(m.Apologies) != 0 {
			t.Errorf("missing apologies should decode as empty list, got %#v", m.Apologies)
		}
		if m.Sections[1].Actions == nil {
			t.Error("null actions should decode as empty list")
		}
		if got := m.Sections[0].Actions[0].DueDate; got != "24/06/2025" {
			t.Errorf("due date = %q, want 24/06/2025", got)
		}
		if m.Sections[0].Dates != nil {
			t.Error("null dates should stay nil")
		}
	})

	t.Run("missing meta field fails validation", func(t *testing.T) {
		_, err := Decode([]byte(`{"meta": {"project": "P"}, "sections": []}`))
		if !errors.Is(err, ErrInvalid) {
			t.Fatalf("expected ErrInvalid, got %v", err)
		}
	})

	t.Run("person without name fails validation", func(t *testing.T) {
		doc := `{"meta": {"project": "", "job_min_no": "", "description": "", "date": "", "time": "", "location": ""}, "attendees": [{"initials": "AB"}]}`
		if _, err := Decode([]byte(doc)); !errors.Is(err, ErrInvalid) {
			t.Fatalf("expected ErrInvalid, got %v", err)
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		if _, err := Decode([]byte(`{"meta": `)); !errors.Is(err, ErrInvalid) {
			t.Fatalf("expected ErrInvalid, got %v", err)
		}
	})

	t.Run("unknown fields tolerated", func(t *testing.T) {
		doc := `{"meta": {"project": "", "job_min_no": "", "description": "", "date": "", "time": "", "location": ""}, "extra": 1}`
		if _, err := Decode([]byte(doc)); err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
	})
}

func TestContractDates(t *testing.T) {
	general := &SectionDates{ContractCommencement: "general"}
	contract := &SectionDates{ContractCommencement: "contract"}
	flagged := &SectionDates{ContractCommencement: "flagged"}

	tests := []struct {
		name     string
		sections []Section
		prefer   string
		want     string
	}{
		{
			name:     "preferred code wins",
			sections: []Section{{Code: "2", Title: "Contract", Dates: contract}, {Code: "6", Title: "Milestones", Dates: flagged}},
			prefer:   "6",
			want:     "flagged",
		},
		{
			name:     "contract title before first dated",
			sections: []Section{{Code: "1", Title: "Intro", Dates: general}, {Code: "6", Title: "Contract Dates", Dates: contract}},
			want:     "contract",
		},
		{
			name:     "falls back to first dated",
			sections: []Section{{Code: "1", Title: "Intro"}, {Code: "2", Title: "Programme", Dates: general}},
			prefer:   "6",
			want:     "general",
		},
		{
			name:     "no dates",
			sections: []Section{{Code: "1", Title: "Intro"}},
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Model{Sections: tt.sections}
			if got := m.ContractDates(tt.prefer).ContractCommencement; got != tt.want {
				t.Errorf("ContractDates() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionSummary(t *testing.T) {
	if got := (ActionItem{Action: "Send drawings", Owner: "Sam"}).Summary(); got != "Sam – Send drawings" {
		t.Errorf("Summary() = %q", got)
	}
	if got := (ActionItem{Action: "Send drawings"}).Summary(); got != "Send drawings" {
		t.Errorf("Summary() = %q", got)
	}
}
