// Package transcript turns an uploaded transcript file into plain text.
package transcript

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/jackzampolin/minutes/internal/docx"
)

// ErrUnsupportedFormat is returned for file extensions other than
// docx, vtt, txt and text.
var ErrUnsupportedFormat = errors.New("unsupported file type")

// Extensions lists the accepted file extensions, lowercase and without dot.
var Extensions = []string{"docx", "vtt", "txt", "text"}

// Load extracts transcript text from data. The format is chosen by the
// extension of filename, compared case-insensitively.
func Load(data []byte, filename string) (string, error) {
	switch ext := extension(filename); ext {
	case "docx":
		return loadDOCX(data)
	case "vtt":
		return ParseVTT(data), nil
	case "txt", "text":
		return strings.ToValidUTF8(string(data), ""), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
	}
}

func extension(filename string) string {
	ext := path.Ext(filename)
	if ext == "" {
		return ""
	}
	return strings.ToLower(ext[1:])
}

func loadDOCX(data []byte) (string, error) {
	paragraphs, err := docx.ReadParagraphs(data)
	if err != nil {
		return "", fmt.Errorf("failed to read docx transcript: %w", err)
	}
	lines := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		if p = strings.TrimSpace(p); p != "" {
			lines = append(lines, p)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// ParseVTT keeps only the spoken lines of a WebVTT file: the header, cue
// timings, numeric cue identifiers and blank lines are dropped.
func ParseVTT(data []byte) string {
	text := strings.ToValidUTF8(string(data), "")
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
		case strings.HasPrefix(line, "WEBVTT"):
		case strings.Contains(line, "-->"):
		case isCueNumber(line):
		default:
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// isCueNumber reports whether line is all digits once dots are removed.
func isCueNumber(line string) bool {
	digits := bytes.ReplaceAll([]byte(line), []byte("."), nil)
	if len(digits) == 0 {
		return false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
