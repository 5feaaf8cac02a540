package summary

import (
	"strings"
	"time"
)

// Version is one immutable generated-or-refined summary text.
// Numbers are 1-based and strictly increasing with no gaps.
type Version struct {
	Content          string    `json:"content"`
	CreatedAt        time.Time `json:"timestamp"`
	Number           int       `json:"versionNumber"`
	RefinementPrompt string    `json:"refinementPrompt,omitempty"` // empty for version 1
}

// WordCount counts whitespace-delimited tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

func (v Version) WordCount() int { return WordCount(v.Content) }
