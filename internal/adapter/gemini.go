package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const geminiDefaultBaseURL = "https://generativelanguage.googleapis.com"

// GenerativeContentAdapter calls the Gemini generateContent REST endpoint.
// The API key travels as the "key" query parameter.
//
// Missing candidates or parts yield empty text rather than an error.
type GenerativeContentAdapter struct {
	BaseURL string
	Client  *http.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (g *GenerativeContentAdapter) Name() string { return "Gemini" }

func (g *GenerativeContentAdapter) Send(ctx context.Context, req Request) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: req.Prompt}}},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", g.fail(req.Model, fmt.Errorf("gemini: marshal request: %w", err))
	}

	baseURL := g.BaseURL
	if baseURL == "" {
		baseURL = geminiDefaultBaseURL
	}
	endpoint := strings.TrimRight(baseURL, "/") + "/v1beta/models/" + url.PathEscape(req.Model) + ":generateContent?" +
		url.Values{"key": {req.APIKey}}.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", g.fail(req.Model, fmt.Errorf("gemini: create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		// url.Error embeds the request URL, which carries the key.
		return "", g.fail(req.Model, fmt.Errorf("gemini: request: %w", redactURLError(err)))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp geminiErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error.Message == "" {
			return "", &ProviderError{Provider: "gemini", Model: req.Model}
		}
		return "", &ProviderError{Provider: "gemini", Model: req.Model, Message: errResp.Error.Message}
	}

	var genResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", g.fail(req.Model, fmt.Errorf("gemini: decode response: %w", err))
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return genResp.Candidates[0].Content.Parts[0].Text, nil
}

func (g *GenerativeContentAdapter) fail(model string, err error) error {
	return &ProviderError{Provider: "gemini", Model: model, Message: err.Error(), Err: err}
}

func redactURLError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	u, perr := url.Parse(urlErr.URL)
	if perr != nil {
		return urlErr.Err
	}
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return &url.Error{Op: urlErr.Op, URL: u.String(), Err: urlErr.Err}
}
