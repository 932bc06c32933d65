package llmcall

import (
	"log/slog"
	"time"

	"github.com/jackzampolin/minutes/internal/metrics"
)

// Recorder emits call records to the log and to the metrics recorder.
type Recorder struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewRecorder creates a new call recorder. Either argument may be nil.
func NewRecorder(logger *slog.Logger, m *metrics.Recorder) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{logger: logger, metrics: m}
}

// Record logs a finished call.
func (r *Recorder) Record(call *Call) {
	if r == nil || call == nil {
		return
	}

	if call.Success {
		r.logger.Debug("provider call", call.LogAttrs()...)
	} else {
		r.logger.Warn("provider call failed", call.LogAttrs()...)
	}
	r.metrics.ProviderCall(call.Provider, call.Kind, call.Success,
		time.Duration(call.LatencyMs)*time.Millisecond, call.InputTokens, call.OutputTokens)
}
