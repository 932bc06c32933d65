package config

import (
	"math"
	"strconv"
	"strings"
)

// Config holds minutes configuration.
// Loaded from ./config.yaml or ~/.minutes/config.yaml, overridden by env.
type Config struct {
	OpenAI     OpenAIConfig     `mapstructure:"openai" yaml:"openai" json:"openai"`
	Extraction ExtractionConfig `mapstructure:"extraction" yaml:"extraction" json:"extraction"`
	Render     RenderConfig     `mapstructure:"render" yaml:"render" json:"render"`
	Server     ServerConfig     `mapstructure:"server" yaml:"server" json:"server"`
	LogLevel   string           `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
}

// OpenAIConfig configures the completion provider.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key" yaml:"api_key" json:"api_key"` // supports ${ENV_VAR} syntax
	Model   string `mapstructure:"model" yaml:"model" json:"model"`
	BaseURL string `mapstructure:"base_url" yaml:"base_url" json:"base_url"` // Azure endpoint root or a /openai/v1 URL
	// Temperature is kept as text: blank or non-numeric means "not sent".
	Temperature       string `mapstructure:"temperature" yaml:"temperature" json:"temperature"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds" json:"timeout_seconds"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute" json:"requests_per_minute"`
}

// ExtractionConfig tunes the extraction orchestrator.
type ExtractionConfig struct {
	MaxTranscriptChars int    `mapstructure:"max_transcript_chars" yaml:"max_transcript_chars" json:"max_transcript_chars"`
	DefaultTemplate    string `mapstructure:"default_template" yaml:"default_template" json:"default_template"`
}

// RenderConfig configures document rendering.
type RenderConfig struct {
	// LayoutDir holds branded layouts overriding the built-in ones.
	LayoutDir string `mapstructure:"layout_dir" yaml:"layout_dir" json:"layout_dir"`
}

// ServerConfig is the HTTP listen address.
type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host" json:"host"`
	Port string `mapstructure:"port" yaml:"port" json:"port"`
}

// ResolvedAPIKey returns the API key with ${ENV_VAR} references expanded.
func (c OpenAIConfig) ResolvedAPIKey() string {
	return ResolveEnvVars(c.APIKey)
}

// ResolvedBaseURL normalizes the configured base URL. A URL already ending
// in /openai/v1 only gets its trailing slash fixed; anything else is treated
// as an endpoint root and gets /openai/v1/ appended. Empty stays empty.
func (c OpenAIConfig) ResolvedBaseURL() string {
	base := strings.TrimRight(strings.TrimSpace(ResolveEnvVars(c.BaseURL)), "/")
	if base == "" {
		return ""
	}
	if strings.HasSuffix(base, "/openai/v1") {
		return base + "/"
	}
	return base + "/openai/v1/"
}

// TemperatureValue parses Temperature. Blank or non-numeric values yield nil.
func (c OpenAIConfig) TemperatureValue() *float64 {
	s := strings.TrimSpace(c.Temperature)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Addr is the host:port the server binds to.
func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// Validate reports settings the service cannot run without.
func (c *Config) Validate() error {
	var missing []string
	if c.OpenAI.ResolvedAPIKey() == "" {
		missing = append(missing, "openai.api_key")
	}
	if strings.TrimSpace(c.OpenAI.Model) == "" {
		missing = append(missing, "openai.model")
	}
	if len(missing) > 0 {
		return &MissingError{Keys: missing}
	}
	return nil
}

// MissingError lists required keys that have no value.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return "missing required config: " + strings.Join(e.Keys, ", ")
}
