package core

import "time"

const (
	AppName    = "chatbot"
	AppVersion = "0.1.0"
)

// Role is the closed set of speakers in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a model context window.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// StoredMessage is a message as persisted in the message store.
type StoredMessage struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// KnowledgeDoc is a knowledge-base entry used for retrieval augmentation.
type KnowledgeDoc struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Category  string     `json:"category"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
