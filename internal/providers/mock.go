package providers

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

const MockClientName = "mock"

// MockStep scripts one Respond call. A non-nil Err is returned as-is;
// otherwise Response is returned, or a message envelope carrying Text.
type MockStep struct {
	Text     string
	Response *Response
	Err      error
}

// MockClient is a scripted Responder for tests and offline runs.
// Steps are consumed in order; once exhausted the last step repeats.
type MockClient struct {
	Latency time.Duration
	Steps   []MockStep

	mu       sync.Mutex
	requests []ResponseRequest

	requestCount atomic.Int64
}

// NewMockClient creates a mock that answers every request with text.
func NewMockClient(texts ...string) *MockClient {
	m := &MockClient{}
	for _, t := range texts {
		m.Steps = append(m.Steps, MockStep{Text: t})
	}
	return m
}

// Name returns the client identifier.
func (c *MockClient) Name() string {
	return MockClientName
}

// Respond returns the next scripted step.
func (c *MockClient) Respond(ctx context.Context, req *ResponseRequest) (*Response, error) {
	n := c.requestCount.Add(1)

	c.mu.Lock()
	c.requests = append(c.requests, *req)
	c.mu.Unlock()

	if c.Latency > 0 {
		select {
		case <-time.After(c.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(c.Steps) == 0 {
		return nil, fmt.Errorf("mock client has no scripted responses")
	}
	idx := int(n) - 1
	if idx >= len(c.Steps) {
		idx = len(c.Steps) - 1
	}
	step := c.Steps[idx]

	if step.Err != nil {
		return nil, step.Err
	}
	if step.Response != nil {
		return step.Response, nil
	}
	return MessageResponse(fmt.Sprintf("mock-%d", n), req.Model, step.Text), nil
}

// RequestCount returns the number of Respond calls.
func (c *MockClient) RequestCount() int64 {
	return c.requestCount.Load()
}

// Requests returns a copy of every request received.
func (c *MockClient) Requests() []ResponseRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ResponseRequest, len(c.requests))
	copy(out, c.requests)
	return out
}

// MessageResponse builds an envelope whose text sits in a message item, the
// shape returned when no flattened text is present.
func MessageResponse(id, model, text string) *Response {
	return &Response{
		ID:    id,
		Model: model,
		Output: []OutputItem{{
			Type:    "message",
			Role:    "assistant",
			Content: []OutputContent{{Type: "output_text", Text: text}},
		}},
	}
}

var _ Responder = (*MockClient)(nil)
