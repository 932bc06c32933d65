package providers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestOpenAIRespondSuccess(t *testing.T) {
	var payload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/responses" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("unmarshal body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "resp_1",
			"model": "gpt-4.1-mini",
			"output": [{"type": "message", "role": "assistant", "content": [{"type": "output_text", "text": "{\"ok\":true}"}]}],
			"usage": {"input_tokens": 10, "output_tokens": 5, "total_tokens": 15}
		}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL})

	resp, err := client.Respond(context.Background(), &ResponseRequest{
		Model:  "gpt-4.1-mini",
		Input:  "prompt",
		Format: FormatJSONObject,
	})
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}

	text, ok := resp.Text()
	if !ok || text != `{"ok":true}` {
		t.Fatalf("Text() = (%q, %v)", text, ok)
	}
	if resp.Usage.TotalTokens != 15 {
		t.Errorf("usage = %+v", resp.Usage)
	}

	if got, _ := payload["model"].(string); got != "gpt-4.1-mini" {
		t.Errorf("model = %q", got)
	}
	if got, _ := payload["input"].(string); got != "prompt" {
		t.Errorf("input = %q", got)
	}
	if _, present := payload["temperature"]; present {
		t.Error("temperature must be omitted when unset")
	}
	format, _ := payload["text"].(map[string]any)["format"].(map[string]any)
	if got, _ := format["type"].(string); got != "json_object" {
		t.Errorf("text.format.type = %q", got)
	}
}

func TestOpenAIRespondSendsTemperature(t *testing.T) {
	var payload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &payload)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"r","output_text":"{}","output":[]}`))
	}))
	defer server.Close()

	temp := 0.2
	client := NewOpenAIClient(OpenAIConfig{APIKey: "k", BaseURL: server.URL})
	if _, err := client.Respond(context.Background(), &ResponseRequest{Model: "m", Input: "p", Temperature: &temp}); err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if got, _ := payload["temperature"].(float64); got != 0.2 {
		t.Errorf("temperature = %v, want 0.2", payload["temperature"])
	}
}

func TestOpenAIRespondNoRetry(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", "3")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit"}}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{APIKey: "k", BaseURL: server.URL, RequestsPerMinute: 10})
	_, err := client.Respond(context.Background(), &ResponseRequest{Model: "m", Input: "p"})
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want exactly 1", hits.Load())
	}
	if st := client.Limiter().Status(); st.Last429Time.IsZero() {
		t.Error("limiter should record the 429")
	}
}

func TestOpenAIRespondRequiresModel(t *testing.T) {
	client := NewOpenAIClient(OpenAIConfig{APIKey: "k"})
	if _, err := client.Respond(context.Background(), &ResponseRequest{Input: "p"}); err == nil {
		t.Fatal("expected error for missing model")
	}
}

func TestOpenAIHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"gpt-4.1-mini","object":"model","created":0,"owned_by":"openai"}]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{APIKey: "k", BaseURL: server.URL})
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck() error = %v", err)
	}
}
