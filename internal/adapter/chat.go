package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/masabou247/llm-evaluator/internal/registry"
)

const openAIDefaultBaseURL = "https://api.openai.com/v1"

// ChatCompletionAdapter speaks the OpenAI chat-completions contract. OpenAI
// and DeepSeek share it and differ only in BaseURL.
//
// A response without choices yields empty text rather than an error.
type ChatCompletionAdapter struct {
	Provider registry.Provider
	BaseURL  string
	Client   *http.Client
}

func (c *ChatCompletionAdapter) Name() string {
	return fmt.Sprintf("Chat completions (%s)", c.Provider)
}

func (c *ChatCompletionAdapter) Send(ctx context.Context, req Request) (string, error) {
	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = openAIDefaultBaseURL
	}
	opts := []option.RequestOption{
		option.WithAPIKey(req.APIKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	}
	if c.Client != nil {
		opts = append(opts, option.WithHTTPClient(c.Client))
	}
	client := openai.NewClient(opts...)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
		MaxTokens: openai.Int(maxTokens),
	}
	if req.UseTemperature {
		params.Temperature = openai.Float(temperature)
	}

	completion, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", c.providerError(req.Model, err)
	}

	if len(completion.Choices) == 0 {
		return "", nil
	}
	return completion.Choices[0].Message.Content, nil
}

func (c *ChatCompletionAdapter) providerError(model string, err error) error {
	pe := &ProviderError{Provider: string(c.Provider), Model: model, Err: err}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		pe.Message = apiErr.Message
		if pe.Message == "" {
			pe.Message = err.Error()
		}
		return pe
	}
	pe.Message = fmt.Sprintf("%s: request: %v", c.Provider, err)
	return pe
}
