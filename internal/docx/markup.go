package docx

import (
	"strings"
	"text/template"
)

// Escape escapes special XML characters and drops runes XML 1.0 does not
// allow, such as vertical tab and other C0 controls.
func Escape(s string) string {
	s = strings.Map(xmlChar, s)
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}

// xmlChar keeps r if it matches the XML 1.0 Char production.
func xmlChar(r rune) rune {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return r
	case r >= 0x20 && r <= 0xD7FF:
		return r
	case r >= 0xE000 && r <= 0xFFFD:
		return r
	case r >= 0x10000 && r <= 0x10FFFF:
		return r
	default:
		return -1
	}
}

// Runs renders text as one or more <w:r> runs. Newlines become line breaks
// and tabs become tab stops, so multi-line values stay in one paragraph.
func Runs(text string, bold bool) string {
	var sb strings.Builder
	sb.WriteString("<w:r>")
	if bold {
		sb.WriteString("<w:rPr><w:b/></w:rPr>")
	}
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			sb.WriteString("<w:br/>")
		}
		for j, chunk := range strings.Split(line, "\t") {
			if j > 0 {
				sb.WriteString("<w:tab/>")
			}
			if chunk != "" {
				sb.WriteString(`<w:t xml:space="preserve">`)
				sb.WriteString(Escape(chunk))
				sb.WriteString("</w:t>")
			}
		}
	}
	sb.WriteString("</w:r>")
	return sb.String()
}

// Paragraph renders a paragraph in the given style ("" for Normal).
func Paragraph(style, text string) string {
	var sb strings.Builder
	sb.WriteString("<w:p>")
	if style != "" {
		sb.WriteString(`<w:pPr><w:pStyle w:val="` + Escape(style) + `"/></w:pPr>`)
	}
	if text != "" {
		sb.WriteString(Runs(text, false))
	}
	sb.WriteString("</w:p>")
	return sb.String()
}

// Heading renders a Heading1 or Heading2 paragraph.
func Heading(level int, text string) string {
	if level < 1 {
		level = 1
	}
	if level > 2 {
		level = 2
	}
	return Paragraph("Heading"+string(rune('0'+level)), text)
}

// Cell renders one table cell. The first row of a table is usually bold.
func Cell(text string, bold bool) string {
	return "<w:tc><w:p>" + Runs(text, bold) + "</w:p></w:tc>"
}

// Funcs are the helpers available to layout templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"xml":       Escape,
		"runs":      func(text string) string { return Runs(text, false) },
		"bold":      func(text string) string { return Runs(text, true) },
		"paragraph": func(text string) string { return Paragraph("", text) },
		"styled":    Paragraph,
		"heading":   Heading,
		"cell":      func(text string) string { return Cell(text, false) },
		"headcell":  func(text string) string { return Cell(text, true) },
	}
}
