package prompt

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInstructionsTooShort = errors.New("prompt: custom instructions too short (minimum 10 characters)")
	ErrInstructionsTooLong  = errors.New("prompt: custom instructions too long (maximum 1000 characters)")
	ErrProhibitedPattern    = errors.New("prompt: custom instructions contain a prohibited pattern")
)

// Phrases associated with prompt-injection attempts. Matching is advisory
// substring checking, not a security boundary.
var prohibitedPhrases = []string{
	"ignore previous",
	"ignore all",
	"disregard",
	"forget everything",
}

// ValidateCustomInstructions checks user-supplied instructions against length
// bounds and the injection-phrase denylist.
func ValidateCustomInstructions(text string) error {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 10 {
		return ErrInstructionsTooShort
	}
	if len(trimmed) > 1000 {
		return ErrInstructionsTooLong
	}
	lower := strings.ToLower(trimmed)
	for _, phrase := range prohibitedPhrases {
		if strings.Contains(lower, phrase) {
			return fmt.Errorf("%w: %q", ErrProhibitedPattern, phrase)
		}
	}
	return nil
}
