package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"ats-analyzer/internal/shared/metrics"
	"ats-analyzer/internal/shared/telemetry"
)

// Completer sends one prompt to a hosted chat model and returns its raw text reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrInvocation matches every *InvocationError via errors.Is.
var ErrInvocation = errors.New("model invocation failed")

// ErrEmptyResponse is returned when the provider answers without any text.
var ErrEmptyResponse = errors.New("model returned an empty response")

// InvocationError reports a network, provider, or timeout failure of a model call.
type InvocationError struct {
	Provider string
	Timeout  bool
	Err      error
}

func (e *InvocationError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s request timeout: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

func (e *InvocationError) Is(target error) bool { return target == ErrInvocation }

// WrapInvocation converts a provider error into an *InvocationError.
func WrapInvocation(provider string, err error) error {
	if err == nil {
		return nil
	}
	var existing *InvocationError
	if errors.As(err, &existing) {
		return err
	}
	return &InvocationError{Provider: provider, Timeout: isTimeout(err), Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return strings.Contains(err.Error(), "Client.Timeout")
}

// WithTimeout bounds a model call; a non-positive timeout leaves ctx unchanged.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

type instrumented struct {
	provider string
	model    string
	base     Completer
}

// Instrument records latency and outcome of every call made through c.
func Instrument(provider, model string, c Completer) Completer {
	if c == nil {
		return nil
	}
	return instrumented{provider: provider, model: model, base: c}
}

func (i instrumented) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	out, err := i.base.Complete(ctx, prompt)
	elapsed := time.Since(start)
	metrics.ObserveModelDuration(i.provider, elapsed)

	fields := map[string]any{
		"provider":       i.provider,
		"model":          i.model,
		"prompt_hash":    PromptHash(prompt),
		"prompt_chars":   len(prompt),
		"response_chars": len(out),
		"duration_ms":    float64(elapsed.Microseconds()) / 1000.0,
	}
	if err != nil {
		fields["err"] = err.Error()
		telemetry.Error("llm.response", fields)
		return "", err
	}
	telemetry.Info("llm.response", fields)
	return out, nil
}
