// Package extract provides the degraded fallback path for documents the
// remote model cannot ingest natively: pull out whatever text we can so it
// can be inlined into the prompt. Real OCR / PDF text extraction is an
// external collaborator behind the Extractor interface.
package extract

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"
)

var ErrNoExtractableText = errors.New("extract: document has no extractable text")

type Extractor interface {
	Extract(ctx context.Context, name string, data []byte) (string, error)
}

// PlainText salvages UTF-8 text from the raw bytes. Binary payloads are
// rejected rather than inlined as garbage.
type PlainText struct{}

func (PlainText) Extract(_ context.Context, _ string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNoExtractableText
	}
	if !utf8.Valid(data) {
		return "", ErrNoExtractableText
	}
	text := strings.Map(func(r rune) rune {
		if r == 0 || (r < 0x20 && r != '\n' && r != '\r' && r != '\t') {
			return -1
		}
		return r
	}, string(data))
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoExtractableText
	}
	return text, nil
}
