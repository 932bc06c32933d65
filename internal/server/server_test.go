package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jackzampolin/minutes/internal/api"
	"github.com/jackzampolin/minutes/internal/config"
	"github.com/jackzampolin/minutes/internal/metrics"
	"github.com/jackzampolin/minutes/internal/providers"
	"github.com/jackzampolin/minutes/internal/server/endpoints"
)

const minutesJSON = `{
  "meta": {"project": "", "job_min_no": "", "description": "", "date": "", "time": "", "location": ""},
  "attendees": [{"name": "Sam Smith", "initials": "SS", "company": "Acme"}],
  "apologies": [],
  "sections": [
    {"code": "6", "title": "Contract Dates", "notes": "", "actions": [], "dates": {"contract_commencement": "01/01/2025", "section1_completion": null, "section2_completion": null, "section3_completion": null, "practical_completion": "30/11/2026"}}
  ]
}`

func clearEnv(t *testing.T) {
	t.Helper()
	for _, e := range config.DefaultEntries() {
		for _, name := range e.EnvNames() {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
}

func newManager(t *testing.T, content string) *config.Manager {
	t.Helper()
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	mgr, err := config.NewManager(path)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return mgr
}

const configuredYAML = `
openai:
  api_key: sk-test
  model: gpt-test
server:
  port: "0"
`

func newTestServer(t *testing.T, mgr *config.Manager, provider providers.Responder) *Server {
	t.Helper()
	reg := prometheus.NewRegistry()
	s, err := New(Config{
		Port:          "0",
		ConfigManager: mgr,
		Provider:      provider,
		Metrics:       metrics.NewWithRegistry(reg, reg),
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestServer_TransformThroughClient(t *testing.T) {
	mock := providers.NewMockClient(minutesJSON)
	s := newTestServer(t, newManager(t, configuredYAML), mock)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	client := api.NewClient(ts.URL)
	ctx := context.Background()
	if err := client.WaitReady(ctx, 3, 10*time.Millisecond); err != nil {
		t.Fatalf("WaitReady() error = %v", err)
	}

	fields := map[string]string{
		"project":    "Riverside",
		"job_min_no": "J-1",
		"date":       "03/06/2025",
		"time":       "10:30",
		"location":   "Site office",
	}
	upload := api.Upload{Field: "file", Filename: "notes.TXT", Content: strings.NewReader("Contract runs to 30/11/2026")}

	var resp endpoints.TransformResponse
	if err := client.PostMultipart(ctx, "/transform", fields, upload, &resp); err != nil {
		t.Fatalf("PostMultipart() error = %v", err)
	}
	if resp.Minutes.Meta.Project != "Riverside" || resp.Minutes.Meta.Description != endpoints.DefaultDescription {
		t.Errorf("meta = %+v", resp.Minutes.Meta)
	}
	if dates := resp.Minutes.ContractDates("6"); dates.PracticalCompletion != "30/11/2026" {
		t.Errorf("contract dates = %+v", dates)
	}

	upload.Content = strings.NewReader("again")
	data, header, err := client.Download(ctx, "/transform/download", fields, upload)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if !strings.HasPrefix(string(data), "PK") {
		t.Error("download is not a zip container")
	}
	if !strings.Contains(header.Get("Content-Disposition"), "meeting_minutes_03-06-2025.docx") {
		t.Errorf("Content-Disposition = %q", header.Get("Content-Disposition"))
	}
	if n := mock.RequestCount(); n != 2 {
		t.Errorf("provider calls = %d, want 2", n)
	}
}

func TestServer_RequiresConfiguredProvider(t *testing.T) {
	s := newTestServer(t, newManager(t, "log_level: debug\n"), nil)
	if s.Services().Extractor != nil {
		t.Fatal("extractor built without credentials")
	}

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()
	client := api.NewClient(ts.URL)
	fields := map[string]string{
		"project":    "Riverside",
		"job_min_no": "J-1",
		"date":       "03/06/2025",
		"time":       "10:30",
		"location":   "Site office",
	}

	// Bad input is still reported as such without a provider.
	upload := api.Upload{Field: "file", Filename: "notes.pdf", Content: strings.NewReader("x")}
	err := client.PostMultipart(context.Background(), "/transform", fields, upload, nil)
	if err == nil || !strings.Contains(err.Error(), "(400)") {
		t.Errorf("unsupported upload error = %v, want a 400", err)
	}

	upload = api.Upload{Field: "file", Filename: "notes.txt", Content: strings.NewReader("x")}
	err = client.PostMultipart(context.Background(), "/transform", fields, upload, nil)
	if err == nil || !strings.Contains(err.Error(), "(503)") || !strings.Contains(err.Error(), "not configured") {
		t.Errorf("valid upload error = %v, want a 503 naming the missing configuration", err)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("health status = %d, want 503", rec.Code)
	}

	// Catalog routes do not need a provider.
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/templates", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("templates status = %d, want 200", rec.Code)
	}
}

func TestServer_BuildsOpenAIProviderFromConfig(t *testing.T) {
	s := newTestServer(t, newManager(t, configuredYAML), nil)
	if s.Services().Extractor == nil {
		t.Fatal("extractor not built")
	}
	if got := s.Services().Provider.Name(); got == providers.MockClientName {
		t.Errorf("provider = %q, want the OpenAI client", got)
	}
}

func TestServer_CORS(t *testing.T) {
	s := newTestServer(t, newManager(t, configuredYAML), providers.NewMockClient(minutesJSON))

	req := httptest.NewRequest(http.MethodOptions, "/transform", nil)
	req.Header.Set("Origin", "https://minutes.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("simple request Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestExtractionSettings(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.OpenAI.Model = "gpt-x"
	cfg.OpenAI.Temperature = "0.2"
	cfg.Extraction.MaxTranscriptChars = 1000

	got := ExtractionSettings(cfg)
	if got.Model != "gpt-x" || got.MaxTranscriptChars != 1000 {
		t.Errorf("settings = %+v", got)
	}
	if got.Temperature == nil || *got.Temperature != 0.2 {
		t.Errorf("temperature = %v, want 0.2", got.Temperature)
	}

	cfg.OpenAI.Temperature = ""
	if got := ExtractionSettings(cfg); got.Temperature != nil {
		t.Errorf("temperature = %v, want nil when blank", *got.Temperature)
	}
}

func TestServer_StartAndShutdown(t *testing.T) {
	s := newTestServer(t, newManager(t, configuredYAML), providers.NewMockClient(minutesJSON))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for !s.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if !s.IsRunning() {
		t.Fatal("server did not start")
	}
	if err := s.Start(ctx); err == nil {
		t.Error("second Start() succeeded, want error")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	if s.IsRunning() {
		t.Error("IsRunning() = true after shutdown")
	}
}
