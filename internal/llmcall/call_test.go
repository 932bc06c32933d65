package llmcall

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/jackzampolin/minutes/internal/metrics"
)

func TestCallFinish(t *testing.T) {
	c := New("req-1", "extract", "minutes.extract", "abc")
	if c.ID == "" {
		t.Fatal("ID should be generated")
	}

	c.Finish(strings.Repeat("x", 500), nil)
	if !c.Success {
		t.Error("Success = false, want true")
	}
	if len([]rune(c.ResponsePreview)) != responsePreviewRunes {
		t.Errorf("preview length = %d", len([]rune(c.ResponsePreview)))
	}

	failed := New("req-1", "repair", "minutes.repair", "def")
	failed.Finish("", errors.New("boom"))
	if failed.Success || failed.Error != "boom" {
		t.Errorf("failed call = %+v", failed)
	}
}

func TestRecorder(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m := metrics.New()
	r := NewRecorder(logger, m)

	c := New("req-2", "repair", "minutes.repair", "h")
	c.Provider = "mock"
	c.Model = "m"
	c.Finish("", errors.New("bad output"))
	r.Record(c)

	if !strings.Contains(buf.String(), "provider call failed") || !strings.Contains(buf.String(), "request_id=req-2") {
		t.Errorf("log output = %s", buf.String())
	}
	if got := testutil.ToFloat64(m.ProviderCallsTotal.WithLabelValues("mock", "repair", "error")); got != 1 {
		t.Errorf("provider calls = %v, want 1", got)
	}

	var nilRec *Recorder
	nilRec.Record(c)
}
