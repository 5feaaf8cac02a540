package llm

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	genai "google.golang.org/genai"

	"summarist/internal/llmclient"
)

// Markers that identify a transient remote failure eligible for retry.
var retryableMarkers = []string{
	"service overloaded",
	"overloaded",
	"rate limit",
	"timeout",
	"connection reset",
	"unavailable",
}

// Retryable reports whether err looks transient. PermanentError always wins;
// otherwise classification is substring matching on the error text.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	var pErr *llmclient.PermanentError
	if errors.As(err, &pErr) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var aErr genai.APIError
	if errors.As(err, &aErr) {
		return aErr.Code == 429 || aErr.Code >= 500
	}
	msg := strings.ToLower(err.Error())
	for _, m := range retryableMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// AttemptsError wraps the last error after the retry budget is exhausted.
type AttemptsError struct {
	Attempts int
	Err      error
}

func (e *AttemptsError) Error() string {
	return fmt.Sprintf("giving up after %d attempts: %v", e.Attempts, e.Err)
}
func (e *AttemptsError) Unwrap() error { return e.Err }

// RetryPolicy controls the retry middleware. Delays double per attempt with
// up to 25% random jitter added; MaxElapsed caps the total wall-clock time
// spent waiting between attempts.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxElapsed  time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
		MaxElapsed:  30 * time.Second,
	}
}

// Retry retries GenerateText on transient failures. Non-retryable errors fail
// immediately without consuming retry budget. If the context is canceled it
// stops at once.
func Retry(policy RetryPolicy) Middleware {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = 2 * time.Second
	}
	return func(next llmclient.Client) llmclient.Client {
		return &retrying{next: next, policy: policy}
	}
}

type retrying struct {
	next   llmclient.Client
	policy RetryPolicy
}

func (r *retrying) Name() string { return r.next.Name() }
func (r *retrying) Close() error { return r.next.Close() }

func (r *retrying) GenerateText(ctx context.Context, prompt string, history []llmclient.Turn, att *llmclient.Attachment) (string, error) {
	start := time.Now()
	var last error
	attempts := 0
	for i := 0; i < r.policy.MaxAttempts; i++ {
		attempts++
		text, err := r.next.GenerateText(ctx, prompt, history, att)
		if err == nil {
			return text, nil
		}
		if !Retryable(err) {
			return "", err
		}
		last = err
		if i == r.policy.MaxAttempts-1 {
			break
		}
		delay := r.policy.BaseDelay << i
		delay += time.Duration(rand.Int64N(int64(delay)/4 + 1))
		if r.policy.MaxElapsed > 0 && time.Since(start)+delay > r.policy.MaxElapsed {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}
	return "", &AttemptsError{Attempts: attempts, Err: last}
}
