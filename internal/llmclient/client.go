package llmclient

import "context"

// Client is the one operation the summarization core depends on: generate
// text given a prompt, prior conversation context, and an optional inline
// binary attachment.
type Client interface {
	Name() string
	GenerateText(ctx context.Context, prompt string, history []Turn, att *Attachment) (string, error)
	Close() error
}
