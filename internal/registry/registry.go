// Package registry holds the fixed table of models the evaluator queries and
// the per-request credential set used to reach their providers.
package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownModel is returned by Lookup for an id not in the table.
	ErrUnknownModel = errors.New("unknown model")
	// ErrUnknownProvider means a provider tag outside the four known ones.
	ErrUnknownProvider = errors.New("unknown provider")
)

// Provider identifies an upstream LLM vendor.
type Provider string

const (
	OpenAI    Provider = "openai"
	DeepSeek  Provider = "deepseek"
	Gemini    Provider = "gemini"
	Anthropic Provider = "anthropic"
)

// Providers lists every known provider.
func Providers() []Provider {
	return []Provider{OpenAI, DeepSeek, Gemini, Anthropic}
}

func (p Provider) Valid() bool {
	switch p {
	case OpenAI, DeepSeek, Gemini, Anthropic:
		return true
	}
	return false
}

// Model describes one queryable model. It is exposed via GET /api/models.
type Model struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Provider       Provider `json:"provider"`
	UseTemperature bool     `json:"use_temperature"`
	Description    string   `json:"description"`
}

// models is in display order; results are returned in the same order.
var models = []Model{
	{
		ID:             "gemini-2.0-flash-exp",
		Name:           "Gemini 2.0 Flash",
		Provider:       Gemini,
		UseTemperature: true,
		Description:    "Latest Gemini model with enhanced speed and capabilities",
	},
	{
		ID:             "gemini-1.5-flash",
		Name:           "Gemini 1.5 Flash",
		Provider:       Gemini,
		UseTemperature: true,
		Description:    "Fast and efficient Gemini model",
	},
	{
		ID:             "deepseek-reasoner",
		Name:           "DeepSeek Reasoner",
		Provider:       DeepSeek,
		UseTemperature: false,
		Description:    "Optimized for logical reasoning and analytical tasks",
	},
	{
		ID:             "deepseek-chat",
		Name:           "DeepSeek Chat",
		Provider:       DeepSeek,
		UseTemperature: true,
		Description:    "General-purpose chat model with creative capabilities",
	},
	{
		ID:             "gpt-4o-2024-11-20",
		Name:           "GPT-4o",
		Provider:       OpenAI,
		UseTemperature: true,
		Description:    "Latest GPT-4 model with enhanced capabilities",
	},
	{
		ID:             "gpt-4o-mini",
		Name:           "GPT-4o Mini",
		Provider:       OpenAI,
		UseTemperature: true,
		Description:    "Lighter and faster version of GPT-4",
	},
	{
		ID:             "claude-3-5-sonnet-20241022",
		Name:           "Claude 3.5 Sonnet",
		Provider:       Anthropic,
		UseTemperature: true,
		Description:    "Advanced language model from Anthropic",
	},
}

// Models returns a copy of the model table in registry order.
func Models() []Model {
	out := make([]Model, len(models))
	copy(out, models)
	return out
}

// Len returns the number of registered models.
func Len() int { return len(models) }

// Lookup returns the model registered under id.
func Lookup(id string) (Model, error) {
	for _, m := range models {
		if m.ID == id {
			return m, nil
		}
	}
	return Model{}, fmt.Errorf("registry: %w: %s", ErrUnknownModel, id)
}
