package core

import "context"

// MessagesRepository is the durable append-only message log, keyed by
// session id. Timestamps are assigned at persistence time.
type MessagesRepository interface {
	Append(ctx context.Context, sessionID string, role Role, content string) error
	// Recent returns at most limit messages, newest first.
	Recent(ctx context.Context, sessionID string, limit int) ([]StoredMessage, error)
	// All returns the full session history in chronological order.
	All(ctx context.Context, sessionID string) ([]StoredMessage, error)
	SessionIDs(ctx context.Context) ([]string, error)
	// DeleteSession removes every message of the session. Deleting an
	// unknown session is not an error.
	DeleteSession(ctx context.Context, sessionID string) error
}

// KnowledgeRepository persists knowledge-base documents and serves
// case-insensitive substring search over title and content.
type KnowledgeRepository interface {
	Save(ctx context.Context, doc KnowledgeDoc) (int64, error)
	Update(ctx context.Context, doc KnowledgeDoc) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, keyword string) ([]KnowledgeDoc, error)
	ByCategory(ctx context.Context, category string) ([]KnowledgeDoc, error)
}
