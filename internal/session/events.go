package session

import (
	"context"
	"time"

	"summarist/internal/summarize"
)

// Event is one workflow state transition, fanned out to watchers.
type Event struct {
	ConversationID string          `json:"conversationId"`
	State          summarize.State `json:"state"`
	At             time.Time       `json:"at"`
}

type subscriber struct {
	conversationID string // empty means all conversations
	ch             chan Event
}

// Subscribe returns a feed of state transitions for one conversation, or for
// every conversation when conversationID is empty. The feed closes when ctx
// is done. Slow consumers drop events rather than blocking the workflow.
func (m *Manager) Subscribe(ctx context.Context, conversationID string) <-chan Event {
	sub := &subscriber{conversationID: conversationID, ch: make(chan Event, 32)}
	m.subMu.Lock()
	m.subs[sub] = struct{}{}
	m.subMu.Unlock()

	go func() {
		<-ctx.Done()
		m.subMu.Lock()
		delete(m.subs, sub)
		m.subMu.Unlock()
		close(sub.ch)
	}()
	return sub.ch
}

func (m *Manager) onState(conversationID string, st summarize.State) {
	ev := Event{ConversationID: conversationID, State: st, At: time.Now().UTC()}
	m.subMu.Lock()
	for sub := range m.subs {
		if sub.conversationID != "" && sub.conversationID != conversationID {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
		}
	}
	m.subMu.Unlock()
}
