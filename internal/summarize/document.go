package summarize

import (
	"path/filepath"
	"strings"

	"summarist/internal/prompt"
	"summarist/internal/summary"
)

// MaxDocumentBytes is the hard input cap. Larger documents are rejected
// before any remote call.
const MaxDocumentBytes = 10 << 20

// Document is the external file-selection input: metadata plus the raw bytes.
type Document struct {
	Meta summary.DocumentMeta
	Data []byte
}

// Formats the remote model ingests natively, keyed by MIME type and by
// extension for when the picker supplies no MIME type.
var nativeMIME = map[string]prompt.DocumentKind{
	"application/pdf": prompt.DocPDF,
	"image/png":       prompt.DocImage,
	"image/jpeg":      prompt.DocImage,
	"image/gif":       prompt.DocImage,
	"image/webp":      prompt.DocImage,
	"text/plain":      prompt.DocText,
	"text/markdown":   prompt.DocText,
	"text/html":       prompt.DocText,
	"text/csv":        prompt.DocText,
}

var nativeExt = map[string]string{
	".pdf":      "application/pdf",
	".png":      "image/png",
	".jpg":      "image/jpeg",
	".jpeg":     "image/jpeg",
	".gif":      "image/gif",
	".webp":     "image/webp",
	".txt":      "text/plain",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".html":     "text/html",
	".htm":      "text/html",
	".csv":      "text/csv",
}

// classify decides the transmission strategy for a document: native formats
// are attached as raw bytes with the returned MIME type, everything else goes
// through the degraded text-extraction path.
func classify(meta summary.DocumentMeta) (kind prompt.DocumentKind, mimeType string, native bool) {
	if mt := strings.ToLower(strings.TrimSpace(meta.MIMEType)); mt != "" {
		if k, ok := nativeMIME[mt]; ok {
			return k, mt, true
		}
	}
	ext := strings.ToLower(strings.TrimSpace(meta.Extension))
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(meta.Name))
	}
	if !strings.HasPrefix(ext, ".") && ext != "" {
		ext = "." + ext
	}
	if mt, ok := nativeExt[ext]; ok {
		return nativeMIME[mt], mt, true
	}
	return prompt.DocText, "", false
}
