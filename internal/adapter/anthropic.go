package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicDefaultBaseURL = "https://api.anthropic.com/"

// MessagesAdapter connects to the Anthropic Messages API.
//
// A response without content blocks yields empty text rather than an error.
type MessagesAdapter struct {
	BaseURL string
	Client  *http.Client
}

type anthropicErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (m *MessagesAdapter) Name() string { return "Anthropic" }

func (m *MessagesAdapter) Send(ctx context.Context, req Request) (string, error) {
	baseURL := m.BaseURL
	if baseURL == "" {
		baseURL = anthropicDefaultBaseURL
	}
	opts := []option.RequestOption{
		option.WithAPIKey(req.APIKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	}
	if m.Client != nil {
		opts = append(opts, option.WithHTTPClient(m.Client))
	}
	client := anthropic.NewClient(opts...)

	msg, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		return "", m.providerError(req.Model, err)
	}

	if len(msg.Content) == 0 {
		return "", nil
	}
	return msg.Content[0].Text, nil
}

func (m *MessagesAdapter) providerError(model string, err error) error {
	pe := &ProviderError{Provider: "anthropic", Model: model, Err: err}
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		var errResp anthropicErrorResponse
		if json.Unmarshal([]byte(apiErr.RawJSON()), &errResp) == nil && errResp.Error.Message != "" {
			pe.Message = errResp.Error.Message
			return pe
		}
		pe.Message = err.Error()
		return pe
	}
	pe.Message = fmt.Sprintf("anthropic: request: %v", err)
	return pe
}
