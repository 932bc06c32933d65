package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder(t *testing.T) {
	r := New()

	r.Extraction("progress_minutes_v1", OutcomeRepaired, true, 3*time.Second)
	r.ProviderCall("openai", "extract", true, time.Second, 100, 40)
	r.ProviderCall("openai", "repair", false, time.Second, 0, 0)

	if got := testutil.ToFloat64(r.ExtractionsTotal.WithLabelValues("progress_minutes_v1", OutcomeRepaired)); got != 1 {
		t.Errorf("extractions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.TruncationsTotal.WithLabelValues("progress_minutes_v1")); got != 1 {
		t.Errorf("truncations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.ProviderCallsTotal.WithLabelValues("openai", "repair", "error")); got != 1 {
		t.Errorf("repair errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.ProviderTokensTotal.WithLabelValues("openai", "input")); got != 100 {
		t.Errorf("input tokens = %v, want 100", got)
	}

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "minutes_extractions_total") {
		t.Errorf("exposition missing counter:\n%s", body)
	}
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	r.Extraction("t", OutcomeSuccess, false, time.Second)
	r.ProviderCall("p", "extract", true, time.Second, 1, 1)
	r.Transform("json", http.StatusOK)
}
