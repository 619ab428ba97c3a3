package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/masabou247/llm-evaluator/internal/dispatch"
	"github.com/masabou247/llm-evaluator/internal/metrics"
	"github.com/masabou247/llm-evaluator/internal/registry"
)

// Dispatcher fans a prompt out to every model.
type Dispatcher interface {
	DispatchAll(ctx context.Context, prompt string, creds registry.Credentials) ([]dispatch.Result, error)
}

// apiKeys uses pointers so an absent field can be told apart from "".
type apiKeys struct {
	OpenAI    *string `json:"openai"`
	DeepSeek  *string `json:"deepseek"`
	Gemini    *string `json:"gemini"`
	Anthropic *string `json:"anthropic"`
}

func (k *apiKeys) credentials() (registry.Credentials, bool) {
	if k == nil || k.OpenAI == nil || k.DeepSeek == nil || k.Gemini == nil || k.Anthropic == nil {
		return registry.Credentials{}, false
	}
	return registry.Credentials{
		OpenAI:    *k.OpenAI,
		DeepSeek:  *k.DeepSeek,
		Gemini:    *k.Gemini,
		Anthropic: *k.Anthropic,
	}, true
}

type queryRequest struct {
	Prompt  string   `json:"prompt"`
	APIKeys *apiKeys `json:"apiKeys"`
}

type queryResponse struct {
	Responses []dispatch.Result `json:"responses"`
	ElapsedMs int64             `json:"elapsed_ms"`
}

// Query handles POST /api/llm: one prompt, every model, results in registry order.
func Query(d Dispatcher, maxPromptChars int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if req.Prompt == "" {
			writeError(w, http.StatusBadRequest, "Prompt is required")
			return
		}
		creds, ok := req.APIKeys.credentials()
		if !ok {
			writeError(w, http.StatusBadRequest, "API keys are required")
			return
		}
		n := utf8.RuneCountInString(req.Prompt)
		if n > maxPromptChars {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("prompt too long: %d characters (max %d)", n, maxPromptChars))
			return
		}
		metrics.PromptChars.Observe(float64(n))

		start := time.Now()
		results, err := d.DispatchAll(r.Context(), req.Prompt, creds)
		elapsed := time.Since(start)

		if err != nil {
			if errors.Is(err, dispatch.ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, queryResponse{
			Responses: results,
			ElapsedMs: elapsed.Milliseconds(),
		})
	}
}
