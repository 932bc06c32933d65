package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestBuilder_WritesPackage(t *testing.T) {
	body := Heading(1, "Minutes") + Paragraph("", "Line one\nLine two") + Paragraph("", "A & B <c>")
	data, err := NewBuilder(Document{Title: "Riverside", Body: body}).Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Fatal("output is not a zip archive")
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}
	want := map[string]bool{
		"[Content_Types].xml":          false,
		"_rels/.rels":                  false,
		"docProps/core.xml":            false,
		"word/_rels/document.xml.rels": false,
		"word/styles.xml":              false,
		"word/document.xml":            false,
	}
	for _, f := range zr.File {
		if _, ok := want[f.Name]; ok {
			want[f.Name] = true
		}
		if f.Name == "docProps/core.xml" {
			rc, _ := f.Open()
			core, _ := io.ReadAll(rc)
			rc.Close()
			if !strings.Contains(string(core), "<dc:title>Riverside</dc:title>") {
				t.Errorf("core.xml missing title: %s", core)
			}
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing part %s", name)
		}
	}
}

func TestRoundTrip_Paragraphs(t *testing.T) {
	body := Heading(2, "Attendees") +
		Paragraph("", "Sam Smith\tAcme") +
		Paragraph("", "") +
		Paragraph("", "first\nsecond") +
		"<w:tbl><w:tr>" + Cell("cell text", true) + "</w:tr></w:tbl>" +
		Paragraph("", "Fish & Chips")

	data, err := NewBuilder(Document{Body: body}).Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	got, err := ReadParagraphs(data)
	if err != nil {
		t.Fatalf("ReadParagraphs() error = %v", err)
	}
	want := []string{"Attendees", "Sam Smith\tAcme", "", "first\nsecond", "cell text", "Fish & Chips"}
	if len(got) != len(want) {
		t.Fatalf("got %d paragraphs %q, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReadParagraphs_NotDocx(t *testing.T) {
	if _, err := ReadParagraphs([]byte("plain text")); !errors.Is(err, ErrNotDocx) {
		t.Errorf("expected ErrNotDocx for non-zip input, got %v", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("other.xml")
	w.Write([]byte("<x/>"))
	zw.Close()
	if _, err := ReadParagraphs(buf.Bytes()); !errors.Is(err, ErrNotDocx) {
		t.Errorf("expected ErrNotDocx for zip without document part, got %v", err)
	}
}

func TestReadParagraphs_SizeLimit(t *testing.T) {
	old := maxDocumentBytes
	t.Cleanup(func() { maxDocumentBytes = old })

	small, err := NewBuilder(Document{Body: Paragraph("", "short")}).Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	large, err := NewBuilder(Document{Body: Paragraph("", strings.Repeat("a", 64<<10))}).Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	maxDocumentBytes = 16 << 10
	if _, err := ReadParagraphs(small); err != nil {
		t.Errorf("ReadParagraphs(small) error = %v", err)
	}
	if _, err := ReadParagraphs(large); !errors.Is(err, ErrNotDocx) {
		t.Errorf("expected ErrNotDocx for oversized document part, got %v", err)
	}
}

func TestEscape(t *testing.T) {
	if got := Escape(`<a href="x">Tom's & co</a>`); got != "&lt;a href=&quot;x&quot;&gt;Tom&apos;s &amp; co&lt;/a&gt;" {
		t.Errorf("Escape() = %q", got)
	}
}

func TestEscape_DropsIllegalXMLChars(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"line\u000bfeed", "linefeed"},
		{"a\u0001b\u001fc", "abc"},
		{"tab\there\nnext\r", "tab\there\nnext\r"},
		{"bad\xffbyte", "bad\uFFFDbyte"},
		{"keep é \U0001F600", "keep é \U0001F600"},
		{"\uFFFE\uFFFF", ""},
	}
	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
