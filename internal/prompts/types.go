// Package prompts keeps the catalog of embedded prompt templates.
//
// Prompt text lives in .tmpl files next to the code that renders it. Each
// package registers its templates here so the server can list them and so
// every provider call can be traced back to the exact template hash.
package prompts

// EmbeddedPrompt represents a prompt loaded from an embedded .tmpl file.
type EmbeddedPrompt struct {
	Key         string   `json:"key"`                   // Hierarchical key: minutes.extract
	Text        string   `json:"text"`                  // The prompt text (Go template)
	Description string   `json:"description,omitempty"` // Human-readable description
	Variables   []string `json:"variables,omitempty"`   // Extracted template variables
	Hash        string   `json:"hash"`                  // SHA256 hash of the text for change detection
}
