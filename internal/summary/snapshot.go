package summary

import (
	"errors"
	"fmt"
	"time"
)

// Snapshot is the serialized form of a conversation. Round-trips are lossless
// for every field; the live document bytes are not part of it and are
// re-attached by the caller on load.
type Snapshot struct {
	ConversationID string       `json:"conversationId"`
	Document       DocumentMeta `json:"documentMetadata"`
	Messages       []Message    `json:"messages"`
	Versions       []Version    `json:"versions"`
	Config         Config       `json:"config"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// Snapshot captures messages and versions under one lock so an in-flight
// commit can never yield an unpaired snapshot.
func (c *Conversation) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	messages := make([]Message, len(c.messages))
	copy(messages, c.messages)
	return Snapshot{
		ConversationID: c.ID,
		Document:       c.Document,
		Messages:       messages,
		Versions:       c.store.Versions(),
		Config:         c.Config,
		CreatedAt:      c.CreatedAt,
	}
}

// Restore rebuilds a conversation from a snapshot, revalidating the paired
// growth of messages and versions.
func Restore(s Snapshot) (*Conversation, error) {
	if s.ConversationID == "" {
		return nil, errors.New("summary: snapshot has no conversation id")
	}
	if len(s.Messages) != 2*len(s.Versions) {
		return nil, fmt.Errorf("summary: snapshot has %d messages for %d versions", len(s.Messages), len(s.Versions))
	}
	c := &Conversation{
		ID:        s.ConversationID,
		Document:  s.Document,
		Config:    s.Config,
		CreatedAt: s.CreatedAt,
	}
	for i, v := range s.Versions {
		if err := c.AppendExchange(s.Messages[2*i], s.Messages[2*i+1], v); err != nil {
			return nil, err
		}
	}
	return c, nil
}
