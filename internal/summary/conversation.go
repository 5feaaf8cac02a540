package summary

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"summarist/internal/prompt"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one immutable entry of the conversation log. Messages are only
// ever appended in user/model pairs after a successful remote call.
type Message struct {
	Role          Role      `json:"role"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"timestamp"`
	AttachmentRef string    `json:"attachmentRef,omitempty"`
}

// Turn is the transport-neutral projection of a message used as conversation
// history for the next remote call.
type Turn struct {
	Role    Role
	Content string
}

// DocumentMeta describes the source document. The live byte buffer or file
// handle is carried separately and never serialized.
type DocumentMeta struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"sizeBytes"`
	Extension string `json:"extension"`
	MIMEType  string `json:"mimeType,omitempty"`
}

// Config is fixed at conversation creation.
type Config struct {
	Size         prompt.Size `json:"size"`
	CustomPrompt string      `json:"customPrompt,omitempty"`
}

var errBrokenPair = errors.New("summary: exchange must be a user message followed by a model message")

// Conversation owns the message log and version sequence for one
// document-summarization session. Both sequences are append-only and grow in
// lockstep: two messages per version. All accessors are safe to call while a
// commit is in progress on another goroutine; navigation and reads never
// block on a remote call.
type Conversation struct {
	ID        string
	Document  DocumentMeta
	Config    Config
	CreatedAt time.Time

	mu       sync.RWMutex
	messages []Message
	store    Store
}

func NewConversation(doc DocumentMeta, cfg Config) *Conversation {
	return &Conversation{
		ID:        uuid.NewString(),
		Document:  doc,
		Config:    cfg,
		CreatedAt: time.Now().UTC(),
	}
}

func (c *Conversation) Messages() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) Versions() []Version {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Versions()
}

// VersionAt returns the version at index i.
func (c *Conversation) VersionAt(i int) (Version, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.At(i)
}

// Undo moves a cursor one version back.
func (c *Conversation) Undo(cursor int) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Undo(cursor)
}

// Redo moves a cursor one version forward.
func (c *Conversation) Redo(cursor int) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Redo(cursor)
}

// JumpTo moves a cursor to target. moved=false reports the same-index no-op.
func (c *Conversation) JumpTo(cursor, target int) (int, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.JumpTo(cursor, target)
}

// LatestNumber returns the highest version number so far, 0 when empty.
func (c *Conversation) LatestNumber() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Len()
}

// HasModelMessage reports whether any summary has been produced yet. Used to
// guard refinement against running with no prior summary.
func (c *Conversation) HasModelMessage() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.messages {
		if m.Role == RoleModel {
			return true
		}
	}
	return false
}

// AppendExchange commits one user/model message pair together with the
// version the model message produced. Nothing is appended unless all three
// records validate, so a failed remote call can never leave an orphaned user
// message or a version-number gap.
func (c *Conversation) AppendExchange(user, model Message, v Version) error {
	if user.Role != RoleUser || model.Role != RoleModel {
		return errBrokenPair
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if want := c.store.Len() + 1; v.Number != want {
		return fmt.Errorf("summary: version number %d does not continue sequence (want %d)", v.Number, want)
	}
	c.messages = append(c.messages, user, model)
	// Cannot fail: the number was checked above and nothing else appends.
	_ = c.store.Append(v)
	return nil
}

// ContextWindow projects the full message history as ordered turns. No
// truncation is performed; trimming history is the remote client's concern.
func (c *Conversation) ContextWindow() []Turn {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Turn, len(c.messages))
	for i, m := range c.messages {
		out[i] = Turn{Role: m.Role, Content: m.Content}
	}
	return out
}
