// Package prompt builds the text sent to the generative model and validates
// user-supplied custom instructions. Everything here is pure string work.
package prompt

import (
	"fmt"
	"strings"
)

// Size selects the target length of the initial summary.
type Size string

const (
	SizeShort  Size = "short"
	SizeMedium Size = "medium"
	SizeLong   Size = "long"
)

// WordTarget returns the approximate word-count target for a size.
func (s Size) WordTarget() int {
	if t, ok := sizeTemplates[s]; ok {
		return t.words
	}
	return 0
}

func (s Size) Valid() bool {
	_, ok := sizeTemplates[s]
	return ok
}

// Intent names a category of requested edit for a refinement call.
type Intent string

const (
	IntentShorter      Intent = "shorter"
	IntentLonger       Intent = "longer"
	IntentSimpler      Intent = "simpler"
	IntentTechnical    Intent = "technical"
	IntentBulletPoints Intent = "bulletPoints"
	IntentAddDetails   Intent = "addDetails"
	IntentCustom       Intent = "custom"
)

func (i Intent) Valid() bool {
	if i == IntentCustom {
		return true
	}
	_, ok := intentTemplates[i]
	return ok
}

// DocumentKind picks the lead-in sentence of the initial prompt.
type DocumentKind string

const (
	DocPDF   DocumentKind = "pdf"
	DocImage DocumentKind = "image"
	DocText  DocumentKind = "text"
)

type sizeTemplate struct {
	words int
	block string
}

var sizeTemplates = map[Size]sizeTemplate{
	SizeShort: {
		words: 100,
		block: "Write a short summary of roughly 100 words in 2-3 sentences. Capture only the single most important point of the document.",
	},
	SizeMedium: {
		words: 250,
		block: "Write a medium-length summary of roughly 250 words in 1-2 paragraphs. Cover the main points and the most important supporting details.",
	},
	SizeLong: {
		words: 500,
		block: "Write a detailed summary of roughly 500 words in 3-4 paragraphs. Cover all major points, supporting details, and notable conclusions.",
	},
}

var docLeadIns = map[DocumentKind]string{
	DocPDF:   "Summarize the attached PDF document.",
	DocImage: "Summarize the document shown in the attached image. Read any visible text carefully.",
	DocText:  "Summarize the following document text.",
}

var intentTemplates = map[Intent]string{
	IntentShorter:      "Rewrite the summary to be 30-40% shorter while preserving all essential information.",
	IntentLonger:       "Expand the summary with additional relevant detail from the document, making it roughly 50% longer.",
	IntentSimpler:      "Rewrite the summary in plain, simple language that a general reader can follow. Avoid jargon.",
	IntentTechnical:    "Rewrite the summary for a technical audience. Keep precise terminology and include technical specifics.",
	IntentBulletPoints: "Reformat the summary as a bulleted list of its key points, one point per bullet.",
	IntentAddDetails:   "Add more supporting details, examples, and figures from the document to the summary.",
}

// genericImprove is the fallback used when a custom refinement arrives with no
// feedback text.
const genericImprove = "Improve this summary: make it clearer and better organized while keeping its length."

// BuildInitial composes the prompt for the first summary of a document:
// lead-in by document kind, size instruction block, then any custom
// instructions.
func BuildInitial(kind DocumentKind, size Size, custom string) (string, error) {
	lead, ok := docLeadIns[kind]
	if !ok {
		return "", fmt.Errorf("prompt: unknown document kind %q", kind)
	}
	tpl, ok := sizeTemplates[size]
	if !ok {
		return "", fmt.Errorf("prompt: unknown size %q", size)
	}
	var b strings.Builder
	b.WriteString(lead)
	b.WriteString("\n\n")
	b.WriteString(tpl.block)
	if custom = strings.TrimSpace(custom); custom != "" {
		b.WriteString("\n\nAdditional instructions from the reader:\n")
		b.WriteString(custom)
	}
	return b.String(), nil
}

// BuildRefinement maps an intent to its instruction template. The custom
// intent uses the feedback verbatim, falling back to a generic instruction
// when feedback is empty.
func BuildRefinement(intent Intent, feedback string) (string, error) {
	if intent == IntentCustom {
		if f := strings.TrimSpace(feedback); f != "" {
			return f, nil
		}
		return genericImprove, nil
	}
	tpl, ok := intentTemplates[intent]
	if !ok {
		return "", fmt.Errorf("prompt: unknown refinement intent %q", intent)
	}
	return tpl, nil
}
