package chat

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

const (
	reasoningOpen  = "<think>"
	reasoningClose = "</think>"
)

// CleanInput normalizes raw user input: outer whitespace is trimmed and
// interior whitespace runs collapse to a single space. Empty input yields
// an empty string.
func CleanInput(text string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(text), " ")
}

// StripReasoning removes the model's internal reasoning block from a reply.
// Everything up to and including the close marker is discarded and the
// remainder trimmed. Without a matching pair of markers the text passes
// through unchanged; fail-open is the intended behavior here.
func StripReasoning(text string) string {
	if !strings.Contains(text, reasoningOpen) {
		return text
	}
	end := strings.Index(text, reasoningClose)
	if end == -1 {
		return text
	}
	return strings.TrimSpace(text[end+len(reasoningClose):])
}
