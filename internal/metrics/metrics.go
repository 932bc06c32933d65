// Package metrics exposes Prometheus counters and histograms for extraction
// outcomes and provider calls.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Extraction outcomes.
const (
	OutcomeSuccess        = "success"
	OutcomeRepaired       = "repaired"
	OutcomeResponseFormat = "response_format"
	OutcomeParseFailure   = "parse_failure"
	OutcomeProviderError  = "provider_error"
	OutcomeCancelled      = "cancelled"
)

// Transform response modes.
const (
	ModeJSON     = "json"
	ModeDownload = "download"
)

// Recorder holds every collector the service publishes.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	gatherer prometheus.Gatherer

	ExtractionsTotal    *prometheus.CounterVec
	ExtractionSeconds   *prometheus.HistogramVec
	TruncationsTotal    *prometheus.CounterVec
	ProviderCallsTotal  *prometheus.CounterVec
	ProviderCallSeconds *prometheus.HistogramVec
	ProviderTokensTotal *prometheus.CounterVec
	TransformsTotal     *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	return NewWithRegistry(reg, reg)
}

// NewWithRegistry registers the collectors on reg and serves them from g.
func NewWithRegistry(reg prometheus.Registerer, g prometheus.Gatherer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		gatherer: g,

		ExtractionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minutes_extractions_total",
				Help: "Extractions by template and outcome",
			},
			[]string{"template", "outcome"},
		),
		ExtractionSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "minutes_extraction_seconds",
				Help:    "End-to-end extraction latency including any repair call",
				Buckets: []float64{1, 2, 5, 10, 20, 30, 60, 120, 300},
			},
			[]string{"template"},
		),
		TruncationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minutes_transcript_truncations_total",
				Help: "Transcripts cut to the input ceiling",
			},
			[]string{"template"},
		),
		ProviderCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minutes_provider_calls_total",
				Help: "Completion provider calls by kind (extract, repair) and status",
			},
			[]string{"provider", "kind", "status"},
		),
		ProviderCallSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "minutes_provider_call_seconds",
				Help:    "Completion provider call latency",
				Buckets: []float64{0.5, 1, 2, 5, 10, 15, 30, 60, 120},
			},
			[]string{"provider", "kind"},
		),
		ProviderTokensTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minutes_provider_tokens_total",
				Help: "Tokens reported by the completion provider",
			},
			[]string{"provider", "direction"},
		),
		TransformsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minutes_transforms_total",
				Help: "Transform requests by response mode and HTTP status",
			},
			[]string{"mode", "code"},
		),
	}
}

// Extraction records the outcome of one extraction.
func (r *Recorder) Extraction(template, outcome string, truncated bool, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.ExtractionsTotal.WithLabelValues(template, outcome).Inc()
	r.ExtractionSeconds.WithLabelValues(template).Observe(elapsed.Seconds())
	if truncated {
		r.TruncationsTotal.WithLabelValues(template).Inc()
	}
}

// ProviderCall records one completion call.
func (r *Recorder) ProviderCall(provider, kind string, success bool, elapsed time.Duration, inputTokens, outputTokens int) {
	if r == nil {
		return
	}
	status := "ok"
	if !success {
		status = "error"
	}
	r.ProviderCallsTotal.WithLabelValues(provider, kind, status).Inc()
	r.ProviderCallSeconds.WithLabelValues(provider, kind).Observe(elapsed.Seconds())
	if inputTokens > 0 {
		r.ProviderTokensTotal.WithLabelValues(provider, "input").Add(float64(inputTokens))
	}
	if outputTokens > 0 {
		r.ProviderTokensTotal.WithLabelValues(provider, "output").Add(float64(outputTokens))
	}
}

// Transform records one HTTP transform request.
func (r *Recorder) Transform(mode string, code int) {
	if r == nil {
		return
	}
	r.TransformsTotal.WithLabelValues(mode, strconv.Itoa(code)).Inc()
}

// Handler serves the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil || r.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
