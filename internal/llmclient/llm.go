// Package llmclient wraps the remote generative-AI API. Clients focus on the
// API call itself; cross-cutting concerns (retries, rate limiting, logging)
// are applied via middleware in internal/llm.
package llmclient

import "errors"

// ErrEmptyResponse is returned when the model replies with no usable text.
var ErrEmptyResponse = errors.New("llmclient: empty response from model")

// Turn is one prior exchange replayed to the model as conversational memory.
type Turn struct {
	Role    string // "user" or "model"
	Content string
}

// Attachment carries document bytes sent inline with a prompt.
type Attachment struct {
	MIMEType string
	Data     []byte
}

// PermanentError marks a failure that will not resolve with retries
// (auth failure, malformed request, not-found).
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}
