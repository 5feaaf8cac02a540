// Package session owns the live state of each summarization session: the
// conversation, its version cursor, and the single-outstanding-call guard.
package session

import (
	"context"
	"errors"
	"sync"

	"summarist/internal/prompt"
	"summarist/internal/summarize"
	"summarist/internal/summary"
)

var (
	ErrNotFound = errors.New("session: conversation not found")
	// ErrBusy rejects a second generation/refinement while one is in
	// flight for the same conversation.
	ErrBusy = errors.New("session: a remote call is already in flight")
	// ErrEmptySnapshot rejects restoring a snapshot with no versions; a live
	// session always holds at least the initial summary.
	ErrEmptySnapshot = errors.New("session: snapshot holds no versions")
)

type session struct {
	conv     *summary.Conversation
	cursor   int
	inFlight bool
}

type Manager struct {
	svc *summarize.Service

	mu       sync.RWMutex
	sessions map[string]*session

	subMu sync.Mutex
	subs  map[*subscriber]struct{}
}

func NewManager(svc *summarize.Service) *Manager {
	m := &Manager{
		svc:      svc,
		sessions: make(map[string]*session),
		subs:     make(map[*subscriber]struct{}),
	}
	svc.SetObserver(m.onState)
	return m
}

// Generate starts a new session. The conversation is registered only when
// the first generation succeeds; the cursor starts at its only version.
func (m *Manager) Generate(ctx context.Context, doc summarize.Document, size prompt.Size, custom string) (summary.Snapshot, summary.Version, error) {
	conv, v, err := m.svc.Generate(ctx, doc, size, custom)
	if err != nil {
		return summary.Snapshot{}, summary.Version{}, err
	}
	m.mu.Lock()
	m.sessions[conv.ID] = &session{conv: conv, cursor: 0}
	m.mu.Unlock()
	return conv.Snapshot(), v, nil
}

// Refine appends a new version to an existing session and moves the cursor
// to it. While the remote call is outstanding, further generation or
// refinement on the same conversation is rejected with ErrBusy; navigation
// stays available since it only touches the cursor.
func (m *Manager) Refine(ctx context.Context, conversationID string, intent prompt.Intent, feedback string) (summary.Version, int, error) {
	m.mu.Lock()
	sess, ok := m.sessions[conversationID]
	if !ok {
		m.mu.Unlock()
		return summary.Version{}, 0, ErrNotFound
	}
	if sess.inFlight {
		m.mu.Unlock()
		return summary.Version{}, 0, ErrBusy
	}
	sess.inFlight = true
	conv := sess.conv
	m.mu.Unlock()

	v, err := m.svc.Refine(ctx, conv, intent, feedback)

	m.mu.Lock()
	sess.inFlight = false
	if err == nil {
		// New work always becomes current.
		sess.cursor = conv.LatestNumber() - 1
	}
	cursor := sess.cursor
	m.mu.Unlock()

	if err != nil {
		return summary.Version{}, 0, err
	}
	return v, cursor, nil
}

// Undo moves the cursor one version back and returns the now-current version.
func (m *Manager) Undo(conversationID string) (int, summary.Version, error) {
	return m.navigate(conversationID, func(conv *summary.Conversation, cursor int) (int, error) {
		return conv.Undo(cursor)
	})
}

// Redo moves the cursor one version forward.
func (m *Manager) Redo(conversationID string) (int, summary.Version, error) {
	return m.navigate(conversationID, func(conv *summary.Conversation, cursor int) (int, error) {
		return conv.Redo(cursor)
	})
}

// JumpTo moves the cursor to target. moved=false reports the same-index
// no-op.
func (m *Manager) JumpTo(conversationID string, target int) (cursor int, moved bool, v summary.Version, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[conversationID]
	if !ok {
		return 0, false, summary.Version{}, ErrNotFound
	}
	cursor, moved, err = sess.conv.JumpTo(sess.cursor, target)
	if err != nil {
		return sess.cursor, false, summary.Version{}, err
	}
	sess.cursor = cursor
	v, _ = sess.conv.VersionAt(cursor)
	return cursor, moved, v, nil
}

func (m *Manager) navigate(conversationID string, move func(*summary.Conversation, int) (int, error)) (int, summary.Version, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[conversationID]
	if !ok {
		return 0, summary.Version{}, ErrNotFound
	}
	cursor, err := move(sess.conv, sess.cursor)
	if err != nil {
		return sess.cursor, summary.Version{}, err
	}
	sess.cursor = cursor
	v, _ := sess.conv.VersionAt(cursor)
	return cursor, v, nil
}

// Current returns the version under the cursor.
func (m *Manager) Current(conversationID string) (int, summary.Version, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[conversationID]
	if !ok {
		return 0, summary.Version{}, ErrNotFound
	}
	v, err := sess.conv.VersionAt(sess.cursor)
	if err != nil {
		return sess.cursor, summary.Version{}, err
	}
	return sess.cursor, v, nil
}

func (m *Manager) Snapshot(conversationID string) (summary.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[conversationID]
	if !ok {
		return summary.Snapshot{}, ErrNotFound
	}
	return sess.conv.Snapshot(), nil
}

// Restore registers a conversation rebuilt from a snapshot. The cursor
// starts at the latest version; the live document bytes are gone and must be
// re-attached by the caller before any native re-upload.
func (m *Manager) Restore(snap summary.Snapshot) (string, error) {
	if len(snap.Versions) == 0 {
		return "", ErrEmptySnapshot
	}
	conv, err := summary.Restore(snap)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.sessions[conv.ID] = &session{conv: conv, cursor: conv.LatestNumber() - 1}
	m.mu.Unlock()
	return conv.ID, nil
}

func (m *Manager) Stats(conversationID string) (summary.Statistics, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[conversationID]
	if !ok {
		return summary.Statistics{}, ErrNotFound
	}
	return summary.Stats(sess.conv.Versions()), nil
}

// Compare measures version at index b against version at index a.
func (m *Manager) Compare(conversationID string, a, b int) (summary.Delta, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[conversationID]
	if !ok {
		return summary.Delta{}, ErrNotFound
	}
	va, err := sess.conv.VersionAt(a)
	if err != nil {
		return summary.Delta{}, err
	}
	vb, err := sess.conv.VersionAt(b)
	if err != nil {
		return summary.Delta{}, err
	}
	return summary.Compare(va, vb), nil
}

// Drop discards a session, e.g. when the user starts a new document.
func (m *Manager) Drop(conversationID string) {
	m.mu.Lock()
	delete(m.sessions, conversationID)
	m.mu.Unlock()
}
