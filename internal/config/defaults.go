package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrNoDefault is returned when no default value exists for a config key.
var ErrNoDefault = errors.New("no default exists")

// ErrInvalidKey is returned when a config key contains invalid characters.
var ErrInvalidKey = errors.New("invalid config key")

// EnvPrefix prefixes the generated environment variable of every key.
const EnvPrefix = "MINUTES"

// Entry describes one configuration key.
type Entry struct {
	Key         string   `json:"key" yaml:"key"`
	Value       any      `json:"default" yaml:"default"`
	Description string   `json:"description" yaml:"description"`
	Env         []string `json:"env,omitempty" yaml:"env,omitempty"` // aliases, in precedence order
}

// EnvNames returns every environment variable bound to the key, highest
// precedence first.
func (e Entry) EnvNames() []string {
	generated := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(e.Key, ".", "_"))
	return append([]string{generated}, e.Env...)
}

// DefaultEntries returns every known key with its default.
func DefaultEntries() []Entry {
	return []Entry{
		// ===================
		// Completion provider
		// ===================
		{
			Key:         "openai.api_key",
			Value:       "${OPENAI_API_KEY}",
			Description: "API key for the completion provider",
			Env:         []string{"AZURE_OPENAI_API_KEY", "OPENAI_API_KEY"},
		},
		{
			Key:         "openai.model",
			Value:       "",
			Description: "Model or Azure deployment name",
			Env:         []string{"OPENAI_MODEL", "AZURE_OPENAI_MODEL"},
		},
		{
			Key:         "openai.base_url",
			Value:       "",
			Description: "Endpoint root or /openai/v1 URL; empty uses the public OpenAI API",
			Env:         []string{"AZURE_OPENAI_ENDPOINT", "AZURE_OPENAI_BASE_URL", "OPENAI_BASE_URL"},
		},
		{
			Key:         "openai.temperature",
			Value:       "",
			Description: "Sampling temperature; blank leaves it to the provider",
			Env:         []string{"OPENAI_TEMPERATURE"},
		},
		{
			Key:         "openai.timeout_seconds",
			Value:       300,
			Description: "HTTP timeout in seconds for one provider call",
		},
		{
			Key:         "openai.requests_per_minute",
			Value:       0,
			Description: "Client-side rate limit; 0 disables it",
		},

		// ===================
		// Extraction
		// ===================
		{
			Key:         "extraction.max_transcript_chars",
			Value:       150000,
			Description: "Transcript characters sent to the provider; the rest is cut",
		},
		{
			Key:         "extraction.default_template",
			Value:       "progress_minutes_v1",
			Description: "Template used when a request names none",
		},

		// ===================
		// Rendering
		// ===================
		{
			Key:         "render.layout_dir",
			Value:       "",
			Description: "Directory of branded <document>.xml.tmpl layouts",
		},

		// ===================
		// Server
		// ===================
		{
			Key:         "server.host",
			Value:       "127.0.0.1",
			Description: "Host to bind to",
		},
		{
			Key:         "server.port",
			Value:       "8000",
			Description: "Port to listen on",
		},
		{
			Key:         "log_level",
			Value:       "info",
			Description: "debug, info, warn or error",
		},
	}
}

// GetDefault returns the default entry for a config key.
// Returns nil if no default exists for the key.
func GetDefault(key string) *Entry {
	for _, entry := range DefaultEntries() {
		if entry.Key == key {
			return &entry
		}
	}
	return nil
}

// ValidateKey checks if a config key contains only allowed characters.
// Valid keys contain: letters, digits, dots, underscores, and hyphens.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}
	for i, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' && r != '-' {
			return fmt.Errorf("%w: invalid character %q at position %d", ErrInvalidKey, r, i)
		}
	}
	if key[0] == '.' || key[len(key)-1] == '.' {
		return fmt.Errorf("%w: key cannot start or end with a dot", ErrInvalidKey)
	}
	return nil
}
