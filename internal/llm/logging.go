package llm

import (
	"context"
	"log"

	"summarist/internal/llmclient"
)

// WithLogging logs request sizes and errors. Provide a custom logger or nil
// to use log.Default().
func WithLogging(logger *log.Logger) Middleware {
	if logger == nil {
		logger = log.Default()
	}
	return func(next llmclient.Client) llmclient.Client {
		return &logging{next: next, log: logger}
	}
}

type logging struct {
	next llmclient.Client
	log  *log.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }

func (l *logging) GenerateText(ctx context.Context, prompt string, history []llmclient.Turn, att *llmclient.Attachment) (string, error) {
	attBytes := 0
	if att != nil {
		attBytes = len(att.Data)
	}
	l.log.Printf("LLM request (%s): prompt=%dB history=%d attachment=%dB", l.next.Name(), len(prompt), len(history), attBytes)
	text, err := l.next.GenerateText(ctx, prompt, history, att)
	if err != nil {
		l.log.Printf("LLM error (%s): %v", l.next.Name(), err)
	}
	return text, err
}
