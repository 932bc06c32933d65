package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

// clearProviderEnv unsets every env var the manager binds so tests do not
// pick up the developer's shell.
func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, e := range DefaultEntries() {
		for _, name := range e.EnvNames() {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return configFile
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.OpenAI.APIKey != "${OPENAI_API_KEY}" {
		t.Errorf("expected api key placeholder, got %q", cfg.OpenAI.APIKey)
	}
	if cfg.Extraction.MaxTranscriptChars != 150000 {
		t.Errorf("expected 150000 char ceiling, got %d", cfg.Extraction.MaxTranscriptChars)
	}
	if cfg.Extraction.DefaultTemplate != "progress_minutes_v1" {
		t.Errorf("unexpected default template %q", cfg.Extraction.DefaultTemplate)
	}
	if cfg.Server.Addr() != "127.0.0.1:8000" {
		t.Errorf("unexpected addr %q", cfg.Server.Addr())
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Run("resolves environment variable", func(t *testing.T) {
		t.Setenv("TEST_API_KEY", "secret123")

		result := ResolveEnvVars("${TEST_API_KEY}")
		if result != "secret123" {
			t.Errorf("expected secret123, got %s", result)
		}
	})

	t.Run("returns empty for missing env var", func(t *testing.T) {
		result := ResolveEnvVars("${DEFINITELY_NOT_SET_12345}")
		if result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})

	t.Run("leaves literal values unchanged", func(t *testing.T) {
		result := ResolveEnvVars("literal-value")
		if result != "literal-value" {
			t.Errorf("expected literal-value, got %s", result)
		}
	})
}

func TestResolvedBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"https://acme.openai.azure.com", "https://acme.openai.azure.com/openai/v1/"},
		{"https://acme.openai.azure.com/", "https://acme.openai.azure.com/openai/v1/"},
		{"https://acme.openai.azure.com/openai/v1", "https://acme.openai.azure.com/openai/v1/"},
		{"https://acme.openai.azure.com/openai/v1///", "https://acme.openai.azure.com/openai/v1/"},
	}
	for _, tt := range tests {
		got := OpenAIConfig{BaseURL: tt.in}.ResolvedBaseURL()
		if got != tt.want {
			t.Errorf("ResolvedBaseURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTemperatureValue(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"", nil},
		{"   ", nil},
		{"warm", nil},
		{"0", ptr(0)},
		{"0.2", ptr(0.2)},
		{"NaN", nil},
		{"nan", nil},
		{"Inf", nil},
		{"-inf", nil},
		{"+Infinity", nil},
		{"1e400", nil},
	}
	for _, tt := range tests {
		got := OpenAIConfig{Temperature: tt.in}.TemperatureValue()
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("TemperatureValue(%q) = %v, want nil", tt.in, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("TemperatureValue(%q) = %v, want %v", tt.in, got, *tt.want)
		}
	}
}

func ptr(f float64) *float64 { return &f }

func TestValidate(t *testing.T) {
	clearProviderEnv(t)

	cfg := DefaultConfig()
	err := cfg.Validate()
	var missing *MissingError
	if !errors.As(err, &missing) || len(missing.Keys) != 2 {
		t.Fatalf("expected two missing keys, got %v", err)
	}

	cfg.OpenAI.APIKey = "sk-test"
	cfg.OpenAI.Model = "gpt-4.1"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("loads from config file", func(t *testing.T) {
		clearProviderEnv(t)
		configFile := writeConfig(t, `
openai:
  api_key: "file-key"
  model: "gpt-file"
  temperature: 0.3
`)

		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}

		cfg := mgr.Get()
		if cfg.OpenAI.APIKey != "file-key" || cfg.OpenAI.Model != "gpt-file" {
			t.Errorf("unexpected provider config %+v", cfg.OpenAI)
		}
		if v := cfg.OpenAI.TemperatureValue(); v == nil || *v != 0.3 {
			t.Errorf("expected temperature 0.3, got %v", v)
		}
		if cfg.Extraction.MaxTranscriptChars != 150000 {
			t.Errorf("defaults not applied, got %d", cfg.Extraction.MaxTranscriptChars)
		}
		if mgr.ConfigFileUsed() != configFile {
			t.Errorf("ConfigFileUsed() = %q", mgr.ConfigFileUsed())
		}
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		if _, err := NewManager(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})
}

func TestNewManager_EnvAliases(t *testing.T) {
	clearProviderEnv(t)
	configFile := writeConfig(t, `
openai:
  api_key: "file-key"
  model: "gpt-file"
`)

	t.Setenv("OPENAI_API_KEY", "openai-key")
	t.Setenv("AZURE_OPENAI_API_KEY", "azure-key")
	t.Setenv("AZURE_OPENAI_MODEL", "azure-deployment")
	t.Setenv("OPENAI_BASE_URL", "https://fallback.example.com")
	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://acme.openai.azure.com")
	t.Setenv("OPENAI_TEMPERATURE", "")
	t.Setenv("MINUTES_EXTRACTION_MAX_TRANSCRIPT_CHARS", "500")

	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	cfg := mgr.Get()

	if cfg.OpenAI.APIKey != "azure-key" {
		t.Errorf("AZURE_OPENAI_API_KEY must win, got %q", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Model != "azure-deployment" {
		t.Errorf("model alias not applied, got %q", cfg.OpenAI.Model)
	}
	if cfg.OpenAI.ResolvedBaseURL() != "https://acme.openai.azure.com/openai/v1/" {
		t.Errorf("unexpected base url %q", cfg.OpenAI.ResolvedBaseURL())
	}
	if cfg.OpenAI.TemperatureValue() != nil {
		t.Error("blank temperature must not be sent")
	}
	if cfg.Extraction.MaxTranscriptChars != 500 {
		t.Errorf("prefixed env not applied, got %d", cfg.Extraction.MaxTranscriptChars)
	}

	v, err := mgr.Value("openai.model")
	if err != nil || v != "azure-deployment" {
		t.Errorf("Value() = %v, %v", v, err)
	}
	if _, err := mgr.Value("openai model"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
	if _, err := mgr.Value("not.a.key"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey for unknown key, got %v", err)
	}
}

func TestManager_OnChange_Multiple(t *testing.T) {
	mgr, err := NewManager(writeConfig(t, "log_level: info\n"))
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	mgr.OnChange(func(cfg *Config) {})
	mgr.OnChange(func(cfg *Config) {})
	mgr.OnChange(func(cfg *Config) {})

	mgr.mu.RLock()
	if len(mgr.callbacks) != 3 {
		t.Errorf("expected 3 callbacks, got %d", len(mgr.callbacks))
	}
	mgr.mu.RUnlock()
}

func TestManager_Get_ThreadSafe(t *testing.T) {
	mgr, err := NewManager(writeConfig(t, "log_level: info\n"))
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				cfg := mgr.Get()
				_ = cfg.OpenAI.Model
			}
			done <- struct{}{}
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestManager_WatchConfig(t *testing.T) {
	clearProviderEnv(t)
	configFile := writeConfig(t, `
openai:
  model: "initial_model"
`)

	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	if got := mgr.Get().OpenAI.Model; got != "initial_model" {
		t.Errorf("initial value mismatch: expected initial_model, got %s", got)
	}

	var callbackCount atomic.Int32
	var lastValue atomic.Value

	mgr.OnChange(func(cfg *Config) {
		callbackCount.Add(1)
		lastValue.Store(cfg.OpenAI.Model)
	})

	mgr.WatchConfig()

	// Give fsnotify time to set up the watcher
	time.Sleep(100 * time.Millisecond)

	newContent := `
openai:
  model: "updated_model"
`
	if err := os.WriteFile(configFile, []byte(newContent), 0644); err != nil {
		t.Fatalf("failed to write updated config file: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if v, _ := lastValue.Load().(string); v == "updated_model" {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	if callbackCount.Load() == 0 {
		t.Fatal("callback was not invoked after config file change")
	}
	if got := mgr.Get().OpenAI.Model; got != "updated_model" {
		t.Errorf("config not updated: expected updated_model, got %s", got)
	}
	if v := lastValue.Load(); v != "updated_model" {
		t.Errorf("callback received wrong value: expected updated_model, got %v", v)
	}
}

func TestWriteDefault(t *testing.T) {
	clearProviderEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	mgr, err := NewManager(path)
	if err != nil {
		t.Fatalf("written defaults do not load: %v", err)
	}
	cfg := mgr.Get()
	if cfg.Extraction.DefaultTemplate != "progress_minutes_v1" || cfg.Server.Port != "8000" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestGetDefault(t *testing.T) {
	entry := GetDefault("openai.model")
	if entry == nil {
		t.Fatal("GetDefault() returned nil for existing key")
	}
	names := entry.EnvNames()
	if names[0] != "MINUTES_OPENAI_MODEL" || names[1] != "OPENAI_MODEL" || names[2] != "AZURE_OPENAI_MODEL" {
		t.Errorf("EnvNames() = %v", names)
	}
	if GetDefault("nonexistent.key") != nil {
		t.Error("GetDefault() should return nil for unknown key")
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"openai.api_key", false},
		{"log_level", false},
		{"server-port", false},
		{"", true},
		{".leading", true},
		{"trailing.", true},
		{"has space", true},
		{"semi;colon", true},
	}
	for _, tt := range tests {
		err := ValidateKey(tt.key)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidKey) {
			t.Errorf("ValidateKey(%q) error should wrap ErrInvalidKey", tt.key)
		}
	}
}
