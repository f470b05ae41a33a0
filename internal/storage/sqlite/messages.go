package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jzq1291/chatbot/internal/core"
	"github.com/jzq1291/chatbot/pkg/log"
)

type MessagesRepo struct {
	db *sql.DB
}

func NewMessagesRepo(db *sql.DB) *MessagesRepo {
	return &MessagesRepo{db: db}
}

func (r *MessagesRepo) Append(ctx context.Context, sessionID string, role core.Role, content string) error {
	query := `INSERT INTO messages (session_id, role, content) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, sessionID, string(role), content); err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// Recent returns the last 'limit' messages of the session, newest first.
// Callers building a model context are expected to reverse the slice.
func (r *MessagesRepo) Recent(ctx context.Context, sessionID string, limit int) ([]core.StoredMessage, error) {
	query := `SELECT id, session_id, role, content, created_at FROM messages WHERE session_id = ? ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent messages: %w", err)
	}
	defer rows.Close()

	messages, err := scanMessages(rows)
	if err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().Int("count", len(messages)).Msg("loaded recent messages")
	return messages, nil
}

func (r *MessagesRepo) All(ctx context.Context, sessionID string) ([]core.StoredMessage, error) {
	query := `SELECT id, session_id, role, content, created_at FROM messages WHERE session_id = ? ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

func (r *MessagesRepo) SessionIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT session_id FROM messages ORDER BY session_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query session ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *MessagesRepo) DeleteSession(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete session messages: %w", err)
	}
	return nil
}

func scanMessages(rows *sql.Rows) ([]core.StoredMessage, error) {
	var messages []core.StoredMessage
	for rows.Next() {
		var msg core.StoredMessage
		var role string
		if err := rows.Scan(&msg.ID, &msg.SessionID, &role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.Role = core.Role(role)
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
