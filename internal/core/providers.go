package core

import "context"

// CompletionProvider produces a reply for an ordered context window.
// Implementations own their timeouts and retries.
type CompletionProvider interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}
