package registry

import "fmt"

// Credentials carries one API key per provider for a single request.
// An empty field means the provider is not configured.
type Credentials struct {
	OpenAI    string `json:"openai"`
	DeepSeek  string `json:"deepseek"`
	Gemini    string `json:"gemini"`
	Anthropic string `json:"anthropic"`
}

// Secret returns the key configured for p.
func (c Credentials) Secret(p Provider) (string, error) {
	switch p {
	case OpenAI:
		return c.OpenAI, nil
	case DeepSeek:
		return c.DeepSeek, nil
	case Gemini:
		return c.Gemini, nil
	case Anthropic:
		return c.Anthropic, nil
	default:
		return "", fmt.Errorf("registry: %w: %q", ErrUnknownProvider, p)
	}
}
