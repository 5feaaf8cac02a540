package summarize

import (
	"context"
	"time"

	"summarist/internal/llmclient"
	"summarist/internal/prompt"
	"summarist/internal/summary"
)

// Refine runs one follow-up refinement: build the intent's prompt, replay
// the conversation as context, call the remote model, and commit the next
// version with its message pair. Fails before any remote call when the
// conversation holds no summary yet.
func (s *Service) Refine(ctx context.Context, conv *summary.Conversation, intent prompt.Intent, feedback string) (summary.Version, error) {
	if conv == nil || !conv.HasModelMessage() {
		return summary.Version{}, ErrNoSummaryToRefine
	}

	s.setState(conv.ID, StatePrompting)
	refinement, err := prompt.BuildRefinement(intent, feedback)
	if err != nil {
		s.setState(conv.ID, StateFailed)
		return summary.Version{}, err
	}

	window := conv.ContextWindow()
	history := make([]llmclient.Turn, len(window))
	for i, t := range window {
		history[i] = llmclient.Turn{Role: string(t.Role), Content: t.Content}
	}

	s.setState(conv.ID, StateAwaitingRemote)
	text, err := s.client.GenerateText(ctx, refinement, history, nil)
	if err != nil {
		return summary.Version{}, s.remoteOutcome(conv.ID, err)
	}

	now := time.Now().UTC()
	v := summary.Version{
		Content:          text,
		CreatedAt:        now,
		Number:           conv.LatestNumber() + 1,
		RefinementPrompt: refinement,
	}
	user := summary.Message{Role: summary.RoleUser, Content: refinement, CreatedAt: now}
	model := summary.Message{Role: summary.RoleModel, Content: text, CreatedAt: now}
	if err := conv.AppendExchange(user, model, v); err != nil {
		s.setState(conv.ID, StateFailed)
		return summary.Version{}, err
	}
	s.setState(conv.ID, StateCommitted)
	return v, nil
}
