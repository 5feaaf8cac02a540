package llmclient

import (
	"context"
	"fmt"
	"strings"
)

// FakeClient returns deterministic text for offline runs and testing.
type FakeClient struct{}

func NewFakeClient() *FakeClient { return &FakeClient{} }

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) GenerateText(ctx context.Context, prompt string, history []Turn, att *Attachment) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	turn := len(history)/2 + 1
	attNote := "no attachment"
	if att != nil {
		attNote = fmt.Sprintf("%s attachment, %d bytes", att.MIMEType, len(att.Data))
	}
	firstLine := prompt
	if i := strings.IndexByte(firstLine, '\n'); i >= 0 {
		firstLine = firstLine[:i]
	}
	return fmt.Sprintf("Fake summary (turn %d, %s). Instruction: %s", turn, attNote, firstLine), nil
}
