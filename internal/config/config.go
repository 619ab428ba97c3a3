package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Port             int           `yaml:"port"`
	OpenAIBaseURL    string        `yaml:"openai_base_url"`
	DeepSeekBaseURL  string        `yaml:"deepseek_base_url"`
	GeminiBaseURL    string        `yaml:"gemini_base_url"`
	AnthropicBaseURL string        `yaml:"anthropic_base_url"`
	UpstreamTimeout  time.Duration `yaml:"upstream_timeout"`
	MaxPromptChars   int           `yaml:"max_prompt_chars"`
	MaxBodyBytes     int64         `yaml:"max_body_bytes"`
	LogLevel         string        `yaml:"log_level"`
	LogFormat        string        `yaml:"log_format"`
}

func defaults() Config {
	return Config{
		Port:            8090,
		DeepSeekBaseURL: "https://api.deepseek.com/v1",
		GeminiBaseURL:   "https://generativelanguage.googleapis.com",
		UpstreamTimeout: 120 * time.Second,
		MaxPromptChars:  10000,
		MaxBodyBytes:    64 * 1024,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Load reads configuration from a YAML file (if path is non-empty), then
// applies LLMEVAL_* environment overrides. An empty path returns defaults
// plus env overrides.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("LLMEVAL_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid LLMEVAL_PORT %q: %w", v, err)
		}
		cfg.Port = p
	}
	if v := os.Getenv("LLMEVAL_OPENAI_BASE_URL"); v != "" {
		cfg.OpenAIBaseURL = v
	}
	if v := os.Getenv("LLMEVAL_DEEPSEEK_BASE_URL"); v != "" {
		cfg.DeepSeekBaseURL = v
	}
	if v := os.Getenv("LLMEVAL_GEMINI_BASE_URL"); v != "" {
		cfg.GeminiBaseURL = v
	}
	if v := os.Getenv("LLMEVAL_ANTHROPIC_BASE_URL"); v != "" {
		cfg.AnthropicBaseURL = v
	}
	if v := os.Getenv("LLMEVAL_UPSTREAM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: invalid LLMEVAL_UPSTREAM_TIMEOUT %q: %w", v, err)
		}
		cfg.UpstreamTimeout = d
	}
	if v := os.Getenv("LLMEVAL_MAX_PROMPT_CHARS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid LLMEVAL_MAX_PROMPT_CHARS %q: %w", v, err)
		}
		cfg.MaxPromptChars = n
	}
	if v := os.Getenv("LLMEVAL_MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: invalid LLMEVAL_MAX_BODY_BYTES %q: %w", v, err)
		}
		cfg.MaxBodyBytes = n
	}
	if v := os.Getenv("LLMEVAL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LLMEVAL_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	return nil
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: port out of range: %d", c.Port)
	}
	if c.UpstreamTimeout < 0 {
		return fmt.Errorf("config: negative upstream_timeout: %s", c.UpstreamTimeout)
	}
	if c.MaxPromptChars <= 0 {
		return fmt.Errorf("config: max_prompt_chars must be positive: %d", c.MaxPromptChars)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: max_body_bytes must be positive: %d", c.MaxBodyBytes)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log_format %q (want text or json)", c.LogFormat)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
