package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	genai "google.golang.org/genai"

	"summarist/internal/llmclient"
)

type scriptClient struct {
	errs  []error
	text  string
	calls int
}

func (c *scriptClient) Name() string { return "script" }
func (c *scriptClient) Close() error { return nil }

func (c *scriptClient) GenerateText(ctx context.Context, prompt string, history []llmclient.Turn, att *llmclient.Attachment) (string, error) {
	c.calls++
	if len(c.errs) > 0 {
		err := c.errs[0]
		c.errs = c.errs[1:]
		if err != nil {
			return "", err
		}
	}
	return c.text, nil
}

func fastPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxElapsed: time.Second}
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	sc := &scriptClient{
		errs: []error{
			errors.New("503: service overloaded"),
			errors.New("rate limit exceeded"),
			nil,
		},
		text: "summary",
	}
	client := Wrap(sc, Retry(fastPolicy()))

	text, err := client.GenerateText(context.Background(), "p", nil, nil)
	require.NoError(t, err)
	require.Equal(t, "summary", text)
	require.Equal(t, 3, sc.calls)
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	sc := &scriptClient{
		errs: []error{llmclient.NewPermanentError(errors.New("API key not valid"))},
	}
	client := Wrap(sc, Retry(fastPolicy()))

	start := time.Now()
	_, err := client.GenerateText(context.Background(), "p", nil, nil)
	require.Error(t, err)
	require.Equal(t, 1, sc.calls)
	require.Less(t, time.Since(start), 500*time.Millisecond)

	var pErr *llmclient.PermanentError
	require.ErrorAs(t, err, &pErr)
}

func TestRetryStopsOnNonRetryableMessage(t *testing.T) {
	sc := &scriptClient{errs: []error{errors.New("document not found")}}
	client := Wrap(sc, Retry(fastPolicy()))

	_, err := client.GenerateText(context.Background(), "p", nil, nil)
	require.Error(t, err)
	require.Equal(t, 1, sc.calls)
}

func TestRetryExhaustionWrapsAttemptCount(t *testing.T) {
	sc := &scriptClient{
		errs: []error{
			errors.New("connection reset by peer"),
			errors.New("connection reset by peer"),
			errors.New("connection reset by peer"),
		},
	}
	client := Wrap(sc, Retry(fastPolicy()))

	_, err := client.GenerateText(context.Background(), "p", nil, nil)
	require.Error(t, err)
	require.Equal(t, 3, sc.calls)

	var attErr *AttemptsError
	require.ErrorAs(t, err, &attErr)
	require.Equal(t, 3, attErr.Attempts)
}

func TestRetryHonorsMaxElapsed(t *testing.T) {
	sc := &scriptClient{
		errs: []error{errors.New("timeout"), errors.New("timeout"), errors.New("timeout")},
	}
	policy := RetryPolicy{MaxAttempts: 3, BaseDelay: 200 * time.Millisecond, MaxElapsed: 50 * time.Millisecond}
	client := Wrap(sc, Retry(policy))

	_, err := client.GenerateText(context.Background(), "p", nil, nil)
	require.Error(t, err)
	// The first backoff already exceeds the ceiling, so only one call runs.
	require.Equal(t, 1, sc.calls)
}

func TestRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sc := &scriptClient{errs: []error{errors.New("timeout"), nil}}
	client := Wrap(sc, Retry(fastPolicy()))

	_, err := client.GenerateText(ctx, "p", nil, nil)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, sc.calls)
}

func TestRetryable(t *testing.T) {
	require.True(t, Retryable(errors.New("service overloaded")))
	require.True(t, Retryable(errors.New("Rate Limit hit")))
	require.True(t, Retryable(errors.New("request timeout")))
	require.True(t, Retryable(errors.New("connection reset")))
	require.True(t, Retryable(errors.New("model is UNAVAILABLE")))

	require.False(t, Retryable(nil))
	require.False(t, Retryable(errors.New("invalid request")))
	require.False(t, Retryable(context.Canceled))
	require.False(t, Retryable(llmclient.NewPermanentError(errors.New("rate limit"))))
}

func TestRetryableAPIStatusCodes(t *testing.T) {
	require.True(t, Retryable(genai.APIError{Code: 429, Message: "quota"}))
	require.True(t, Retryable(genai.APIError{Code: 500, Message: "internal"}))
	require.True(t, Retryable(genai.APIError{Code: 503, Message: "overloaded"}))

	// Status code wins over message text.
	require.False(t, Retryable(genai.APIError{Code: 400, Message: "timeout"}))
	require.False(t, Retryable(genai.APIError{Code: 404, Message: "not found"}))
}

func TestWrapOrder(t *testing.T) {
	sc := &scriptClient{text: "ok"}
	client := Wrap(sc, WithLogging(nil), Retry(fastPolicy()))
	text, err := client.GenerateText(context.Background(), "p", nil, nil)
	require.NoError(t, err)
	require.Equal(t, "ok", text)
	require.Equal(t, "script", client.Name())
}
