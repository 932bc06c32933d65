package providers

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Text returns the text payload of the envelope. The flattened OutputText
// field wins when non-empty; otherwise the first text entry of the first
// "message" item is used. ok is false when neither shape carries text.
func (r *Response) Text() (text string, ok bool) {
	if r == nil {
		return "", false
	}
	if strings.TrimSpace(r.OutputText) != "" {
		return r.OutputText, true
	}
	for _, item := range r.Output {
		if item.Type != "message" {
			continue
		}
		for _, c := range item.Content {
			if c.Text != "" {
				return c.Text, true
			}
		}
		return "", false
	}
	return "", false
}

// ParseJSON parses JSON from model output, with lightweight recovery for
// markdown code fences and surrounding text.
func ParseJSON(content string) (json.RawMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("empty structured output")
	}

	candidates := []string{content}
	if stripped := stripCodeFences(content); stripped != "" && stripped != content {
		candidates = append(candidates, stripped)
	}
	if extracted := extractJSONObject(content); extracted != "" && extracted != content {
		candidates = append(candidates, extracted)
	}

	var firstErr error
	for _, candidate := range candidates {
		var parsed map[string]any
		err := json.Unmarshal([]byte(candidate), &parsed)
		if err == nil {
			return json.RawMessage(candidate), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, fmt.Errorf("failed to parse structured JSON: %w", firstErr)
}

func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return ""
	}

	// Drop first fence line.
	lines = lines[1:]
	// Drop trailing fence if present.
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// extractJSONObject returns the span from the first "{" to the last "}".
func extractJSONObject(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return ""
	}
	return strings.TrimSpace(content[start : end+1])
}
