// Package summarize drives the two remote workflows: the initial summary of
// a document and follow-up refinements. Both either fully commit a version
// plus its user/model message pair, or leave the conversation untouched.
package summarize

import (
	"context"
	"errors"
	"log"

	"summarist/internal/docstore"
	"summarist/internal/extract"
	"summarist/internal/llmclient"
)

// State is the workflow position of one generation or refinement call.
type State string

const (
	StateIdle           State = "idle"
	StatePrompting      State = "prompting"
	StateAwaitingRemote State = "awaiting_remote"
	StateCommitted      State = "committed"
	StateFailed         State = "failed"
	StateCancelled      State = "cancelled"
)

var (
	ErrDocumentTooLarge  = errors.New("summarize: document exceeds 10MB limit")
	ErrEmptyDocument     = errors.New("summarize: document is empty")
	ErrNoSummaryToRefine = errors.New("summarize: no summary to refine yet")
	// ErrCancelled is the distinct outcome of a cancelled call: not a
	// success, and nothing was committed.
	ErrCancelled = errors.New("summarize: cancelled")
)

// Observer receives workflow state transitions, keyed by conversation id.
type Observer func(conversationID string, state State)

// Service holds the collaborators shared by generation and refinement. The
// caller is expected to keep at most one call in flight per conversation;
// the service itself takes no locks.
type Service struct {
	client    llmclient.Client
	docs      docstore.Store
	extractor extract.Extractor
	observe   Observer
	log       *log.Logger
}

func New(client llmclient.Client, docs docstore.Store, ex extract.Extractor) *Service {
	if ex == nil {
		ex = extract.PlainText{}
	}
	return &Service{
		client:    client,
		docs:      docs,
		extractor: ex,
		log:       log.Default(),
	}
}

// SetObserver registers a state-transition observer. Must be called before
// the service is used.
func (s *Service) SetObserver(fn Observer) { s.observe = fn }

func (s *Service) setState(conversationID string, st State) {
	if s.observe != nil {
		s.observe(conversationID, st)
	}
}

// remoteOutcome maps a client error to the workflow outcome. Cancellation is
// distinct from failure.
func (s *Service) remoteOutcome(conversationID string, err error) error {
	if errors.Is(err, context.Canceled) {
		s.setState(conversationID, StateCancelled)
		return ErrCancelled
	}
	s.setState(conversationID, StateFailed)
	return err
}
