package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const OpenAIName = "openai"

// OpenAIConfig holds configuration for the OpenAI Responses client.
type OpenAIConfig struct {
	APIKey            string
	BaseURL           string        // Optional; normalized .../openai/v1/ for Azure
	Timeout           time.Duration // HTTP timeout
	RequestsPerMinute int           // 0 disables client-side rate limiting
	HTTPClient        *http.Client  // Optional (tests)
}

// OpenAIClient implements Responder on the OpenAI (or Azure OpenAI v1)
// Responses API using the official SDK. SDK retries are disabled: a failed
// request is reported to the caller, never replayed.
type OpenAIClient struct {
	client  openai.Client
	baseURL string
	limiter *RateLimiter
}

// NewOpenAIClient creates a new OpenAI Responses client.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 300 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	c := &OpenAIClient{
		client:  openai.NewClient(opts...),
		baseURL: cfg.BaseURL,
	}
	if cfg.RequestsPerMinute > 0 {
		c.limiter = NewRateLimiter(cfg.RequestsPerMinute)
	}
	return c
}

// Name returns the provider identifier.
func (c *OpenAIClient) Name() string {
	return OpenAIName
}

// BaseURL returns the configured base URL ("" for the SDK default).
func (c *OpenAIClient) BaseURL() string {
	return c.baseURL
}

// Limiter returns the client-side rate limiter, or nil when disabled.
func (c *OpenAIClient) Limiter() *RateLimiter {
	return c.limiter
}

type responsesBody struct {
	Model       string            `json:"model"`
	Input       string            `json:"input"`
	Text        *responsesText    `json:"text,omitempty"`
	Temperature *float64          `json:"temperature,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type responsesText struct {
	Format responsesFormat `json:"format"`
}

type responsesFormat struct {
	Type string `json:"type"`
}

// Respond posts to the responses endpoint and decodes the raw envelope so
// both the flattened and the itemized text shapes survive.
func (c *OpenAIClient) Respond(ctx context.Context, req *ResponseRequest) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}
	if req.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	body := responsesBody{
		Model:       req.Model,
		Input:       req.Input,
		Temperature: req.Temperature,
	}
	if req.Format != "" {
		body.Text = &responsesText{Format: responsesFormat{Type: req.Format}}
	}
	if req.RequestID != "" {
		body.Metadata = map[string]string{"request_id": req.RequestID}
	}

	var raw []byte
	if err := c.client.Post(ctx, "responses", body, &raw); err != nil {
		err = c.mapOpenAIError(err)
		return nil, fmt.Errorf("openai responses request failed: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode openai response: %w", err)
	}
	return &resp, nil
}

// HealthCheck verifies the API is reachable and the API key is valid.
func (c *OpenAIClient) HealthCheck(ctx context.Context) error {
	page, err := c.client.Models.List(ctx)
	if err != nil {
		return fmt.Errorf("openai models list failed: %w", c.mapOpenAIError(err))
	}
	if page == nil {
		return fmt.Errorf("openai models list returned nil response")
	}
	return nil
}

func (c *OpenAIClient) mapOpenAIError(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	out := &APIError{
		Provider:   OpenAIName,
		StatusCode: apiErr.StatusCode,
		Message:    apiErr.Message,
	}
	if apiErr.Response != nil {
		out.RetryAfter = parseRetryAfter(apiErr.Response.Header.Get("Retry-After"))
	}
	if apiErr.StatusCode == http.StatusTooManyRequests && c.limiter != nil {
		c.limiter.Record429(out.RetryAfter)
	}
	return out
}

var _ Responder = (*OpenAIClient)(nil)
var _ HealthChecker = (*OpenAIClient)(nil)
