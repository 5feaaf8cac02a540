// Package docstore keeps the raw bytes of uploaded documents so a
// conversation's attachment reference stays resolvable for the whole session.
package docstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("docstore: document not found")

// Store persists document bytes under an opaque reference.
type Store interface {
	Put(ctx context.Context, conversationID, name string, contentType string, data []byte) (ref string, err error)
	Get(ctx context.Context, ref string) ([]byte, error)
}
