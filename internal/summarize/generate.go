package summarize

import (
	"context"
	"strings"
	"time"

	"summarist/internal/llmclient"
	"summarist/internal/prompt"
	"summarist/internal/summary"
)

// Generate runs the first summary of a session: validate, pick a
// transmission strategy, call the remote model, and commit version 1 with
// its message pair. On any failure nothing is committed and the error is
// surfaced unchanged.
func (s *Service) Generate(ctx context.Context, doc Document, size prompt.Size, custom string) (*summary.Conversation, summary.Version, error) {
	if doc.Meta.SizeBytes == 0 {
		doc.Meta.SizeBytes = int64(len(doc.Data))
	}
	if doc.Meta.SizeBytes > MaxDocumentBytes || int64(len(doc.Data)) > MaxDocumentBytes {
		return nil, summary.Version{}, ErrDocumentTooLarge
	}
	if len(doc.Data) == 0 {
		return nil, summary.Version{}, ErrEmptyDocument
	}

	custom = strings.TrimSpace(custom)
	if custom != "" {
		if err := prompt.ValidateCustomInstructions(custom); err != nil {
			return nil, summary.Version{}, err
		}
	}

	conv := summary.NewConversation(doc.Meta, summary.Config{Size: size, CustomPrompt: custom})
	s.setState(conv.ID, StatePrompting)

	kind, mimeType, native := classify(doc.Meta)
	promptText, err := prompt.BuildInitial(kind, size, custom)
	if err != nil {
		s.setState(conv.ID, StateFailed)
		return nil, summary.Version{}, err
	}

	var att *llmclient.Attachment
	if native {
		att = &llmclient.Attachment{MIMEType: mimeType, Data: doc.Data}
	} else {
		text, exErr := s.extractor.Extract(ctx, doc.Meta.Name, doc.Data)
		if exErr != nil {
			s.setState(conv.ID, StateFailed)
			return nil, summary.Version{}, exErr
		}
		promptText += "\n\n[DOCUMENT TEXT]\n" + text
	}

	attachmentRef := ""
	if s.docs != nil {
		ref, putErr := s.docs.Put(ctx, conv.ID, doc.Meta.Name, mimeType, doc.Data)
		if putErr != nil {
			// Storage is supporting infrastructure; generation proceeds
			// without a resolvable ref.
			s.log.Printf("docstore put failed for %s: %v", conv.ID, putErr)
		} else {
			attachmentRef = ref
		}
	}

	s.setState(conv.ID, StateAwaitingRemote)
	text, err := s.client.GenerateText(ctx, promptText, nil, att)
	if err != nil {
		return nil, summary.Version{}, s.remoteOutcome(conv.ID, err)
	}

	now := time.Now().UTC()
	v := summary.Version{Content: text, CreatedAt: now, Number: 1}
	user := summary.Message{Role: summary.RoleUser, Content: promptText, CreatedAt: now, AttachmentRef: attachmentRef}
	model := summary.Message{Role: summary.RoleModel, Content: text, CreatedAt: now}
	if err := conv.AppendExchange(user, model, v); err != nil {
		s.setState(conv.ID, StateFailed)
		return nil, summary.Version{}, err
	}
	s.setState(conv.ID, StateCommitted)
	return conv, v, nil
}
