// Package dispatch fans one prompt out to every registered model and collects
// each answer independently. A failing or slow model never cancels or fails
// its siblings; its error is reported in its own Result.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/masabou247/llm-evaluator/internal/adapter"
	"github.com/masabou247/llm-evaluator/internal/metrics"
	"github.com/masabou247/llm-evaluator/internal/registry"
)

var (
	// ErrInvalidInput rejects a whole call before any model is queried.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternal means the registry and the adapter wiring disagree.
	ErrInternal = errors.New("internal error")
)

// MissingCredentialError reports that no key was supplied for a provider.
type MissingCredentialError struct {
	Provider registry.Provider
}

func (e *MissingCredentialError) Error() string {
	return strings.ToUpper(string(e.Provider)) + " API key is not set"
}

// Result is the settled outcome for one model. Error is empty on success.
type Result struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

func (r Result) OK() bool { return r.Error == "" }

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithModels replaces the registry table the dispatcher iterates over.
func WithModels(models []registry.Model) Option {
	return func(d *Dispatcher) {
		d.models = append([]registry.Model(nil), models...)
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// Dispatcher routes each model to the adapter registered for its provider.
// It holds no per-call state and is safe for concurrent use.
type Dispatcher struct {
	adapters map[registry.Provider]adapter.Adapter
	models   []registry.Model
	logger   *slog.Logger
}

func New(adapters map[registry.Provider]adapter.Adapter, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		adapters: make(map[registry.Provider]adapter.Adapter, len(adapters)),
		models:   registry.Models(),
		logger:   slog.Default(),
	}
	for p, a := range adapters {
		d.adapters[p] = a
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Models returns the models queried by DispatchAll, in result order.
func (d *Dispatcher) Models() []registry.Model {
	return append([]registry.Model(nil), d.models...)
}

// Wired reports whether an adapter is registered for p.
func (d *Dispatcher) Wired(p registry.Provider) bool {
	_, ok := d.adapters[p]
	return ok
}

// DispatchAll sends prompt to every model concurrently and waits for all of
// them to settle. Results are in model order, one per model. The only error
// returned is ErrInvalidInput for an empty prompt.
func (d *Dispatcher) DispatchAll(ctx context.Context, prompt string, creds registry.Credentials) ([]Result, error) {
	if prompt == "" {
		return nil, fmt.Errorf("dispatch: %w: prompt is required", ErrInvalidInput)
	}

	start := time.Now()
	results := make([]Result, len(d.models))

	// No WithContext: a failing branch must not cancel the others.
	var g errgroup.Group
	for i, m := range d.models {
		g.Go(func() error {
			results[i] = d.run(ctx, m, prompt, creds)
			return nil
		})
	}
	g.Wait()

	elapsed := time.Since(start)
	metrics.DispatchDuration.Observe(elapsed.Seconds())

	failures := 0
	for _, r := range results {
		if !r.OK() {
			failures++
		}
	}
	d.logger.InfoContext(ctx, "dispatch complete",
		"models", len(results),
		"failures", failures,
		"elapsed_ms", elapsed.Milliseconds(),
	)

	return results, nil
}

// run isolates one model: errors and panics become that model's Result.
func (d *Dispatcher) run(ctx context.Context, m registry.Model, prompt string, creds registry.Credentials) (res Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = d.settle(ctx, m, "", fmt.Errorf("dispatch: %w: panic in %s: %v", ErrInternal, m.ID, r), start)
		}
	}()

	text, err := d.dispatchOne(ctx, m, prompt, creds)
	return d.settle(ctx, m, text, err, start)
}

func (d *Dispatcher) dispatchOne(ctx context.Context, m registry.Model, prompt string, creds registry.Credentials) (string, error) {
	secret, err := creds.Secret(m.Provider)
	if err != nil {
		return "", fmt.Errorf("dispatch: %w: %v", ErrInternal, err)
	}
	if strings.TrimSpace(secret) == "" {
		return "", &MissingCredentialError{Provider: m.Provider}
	}

	a, ok := d.adapters[m.Provider]
	if !ok {
		return "", fmt.Errorf("dispatch: %w: no adapter for provider %q", ErrInternal, m.Provider)
	}

	text, err := a.Send(ctx, adapter.Request{
		Model:          m.ID,
		Prompt:         prompt,
		APIKey:         secret,
		UseTemperature: m.UseTemperature,
	})
	if err != nil {
		var pe *adapter.ProviderError
		if !errors.As(err, &pe) {
			err = &adapter.ProviderError{Provider: string(m.Provider), Model: m.ID, Message: err.Error(), Err: err}
		}
		return "", err
	}
	return text, nil
}

func (d *Dispatcher) settle(ctx context.Context, m registry.Model, text string, err error, start time.Time) Result {
	provider := string(m.Provider)
	metrics.ModelDuration.WithLabelValues(m.ID, provider).Observe(time.Since(start).Seconds())
	metrics.ModelResults.WithLabelValues(m.ID, provider, outcome(err)).Inc()

	if err == nil {
		return Result{Model: m.ID, Response: text}
	}

	msg := err.Error()
	if msg == "" {
		msg = "Failed to get response from " + m.ID
	}
	d.logger.WarnContext(ctx, "model query failed",
		"model", m.ID,
		"provider", provider,
		"error", msg,
	)
	return Result{Model: m.ID, Error: msg}
}

func outcome(err error) string {
	var missing *MissingCredentialError
	var pe *adapter.ProviderError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &missing):
		return "missing_credential"
	case errors.As(err, &pe):
		return "provider_error"
	default:
		return "internal_error"
	}
}
