// Package adapter implements one client per upstream LLM wire contract.
// Every adapter makes a single attempt per call and reports failures as
// *ProviderError.
package adapter

import "context"

const (
	// maxTokens caps every completion request.
	maxTokens = 1000
	// temperature is sent only for models that accept it.
	temperature = 0.7
)

// Adapter sends one prompt to one model and returns the extracted text.
type Adapter interface {
	Name() string
	Send(ctx context.Context, req Request) (string, error)
}

// Request is a single-turn prompt for a concrete model.
type Request struct {
	Model          string
	Prompt         string
	APIKey         string
	UseTemperature bool
}

// ProviderError is an upstream failure: transport error, non-success status
// or a response that could not be decoded.
type ProviderError struct {
	Provider string
	Model    string
	// Message is the upstream error text when one was available.
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "Failed to get response from " + e.Model
}

func (e *ProviderError) Unwrap() error { return e.Err }
