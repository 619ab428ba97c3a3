package adapter

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// MockAdapter returns canned responses with a configurable delay.
// Used for development and testing without real provider keys.
type MockAdapter struct {
	Delay time.Duration
	// Response is returned verbatim when set; otherwise the prompt is echoed.
	Response string
	// Err makes every call fail with a ProviderError wrapping it.
	Err error

	calls atomic.Int64
}

func (m *MockAdapter) Name() string { return "Mock" }

func (m *MockAdapter) Send(ctx context.Context, req Request) (string, error) {
	m.calls.Add(1)

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", &ProviderError{Provider: "mock", Model: req.Model, Message: fmt.Sprintf("mock: %v", ctx.Err()), Err: ctx.Err()}
		}
	}

	if m.Err != nil {
		return "", &ProviderError{Provider: "mock", Model: req.Model, Message: m.Err.Error(), Err: m.Err}
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return fmt.Sprintf("[%s] %s", req.Model, req.Prompt), nil
}

// Calls reports how many times Send was invoked.
func (m *MockAdapter) Calls() int64 { return m.calls.Load() }
