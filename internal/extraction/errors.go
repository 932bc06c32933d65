package extraction

import (
	"errors"

	"github.com/jackzampolin/minutes/internal/templates"
	"github.com/jackzampolin/minutes/internal/transcript"
)

var (
	// ErrResponseFormat means the provider envelope carried no text at all.
	// It is terminal; there is nothing to repair.
	ErrResponseFormat = errors.New("unexpected provider response format")

	// ErrExtractionParse means neither the primary output nor the single
	// repair output was valid meeting JSON, or the repair call itself failed.
	ErrExtractionParse = errors.New("failed to parse extraction output")

	// ErrProviderCall wraps any failure of the primary completion request.
	ErrProviderCall = errors.New("completion provider call failed")
)

// IsClientError reports whether err was caused by the caller's input
// rather than by the provider or the service.
func IsClientError(err error) bool {
	return errors.Is(err, transcript.ErrUnsupportedFormat) ||
		errors.Is(err, templates.ErrUnknownTemplate)
}

// IsProviderError reports whether err is one of the provider-side failures.
func IsProviderError(err error) bool {
	return errors.Is(err, ErrResponseFormat) ||
		errors.Is(err, ErrExtractionParse) ||
		errors.Is(err, ErrProviderCall)
}
