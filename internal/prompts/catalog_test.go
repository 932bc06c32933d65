package prompts

import (
	"reflect"
	"testing"
)

func TestExtractVariables(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"plain fields", "Hello {{.Name}}, {{ .Meta.Date }} and {{.Name}} again", []string{"Meta.Date", "Name"}},
		{"range rebinds dot", "{{range .Sections}}- {{.Code}}: {{.Title}}{{end}}", []string{"Sections"}},
		{"root variable inside range", "{{range $i, $s := .Tasks}}{{$s}} {{$.Meta.Project}}{{end}}", []string{"Meta.Project", "Tasks"}},
		{"function arguments", "{{aliases .Aliases | printf \"%s\"}}", []string{"Aliases"}},
		{"if and else", "{{if .Truncated}}cut{{else}}{{.Transcript}}{{end}}", []string{"Transcript", "Truncated"}},
		{"with block", "{{with .Meta}}{{.Date}}{{else}}{{.Fallback}}{{end}}", []string{"Fallback", "Meta"}},
		{"static text", "no actions here", []string{}},
		{"unparseable", "{{.Open", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractVariables(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractVariables() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestCatalog(t *testing.T) {
	c := NewCatalog(nil)
	c.Register(EmbeddedPrompt{Key: "b.second", Text: "{{.Transcript}}"})
	c.Register(EmbeddedPrompt{Key: "a.first", Text: "static"})

	p, err := c.Get("b.second")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if p.Hash != HashText("{{.Transcript}}") {
		t.Errorf("hash not computed: %q", p.Hash)
	}
	if !reflect.DeepEqual(p.Variables, []string{"Transcript"}) {
		t.Errorf("variables = %v", p.Variables)
	}

	all := c.All()
	if len(all) != 2 || all[0].Key != "a.first" {
		t.Errorf("All() not sorted: %+v", all)
	}

	if _, err := c.Get("missing"); err == nil {
		t.Error("expected error for missing key")
	}
}
