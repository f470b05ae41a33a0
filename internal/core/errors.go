package core

import "errors"

var (
	// ErrInvalidModel marks a request naming a model id with no registered
	// completion provider. Raised before anything is persisted.
	ErrInvalidModel = errors.New("invalid model id")

	// ErrKnowledgeNotFound marks an update or delete of a missing
	// knowledge-base entry.
	ErrKnowledgeNotFound = errors.New("knowledge entry not found")
)
