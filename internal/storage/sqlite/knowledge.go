package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jzq1291/chatbot/internal/core"
)

type KnowledgeRepo struct {
	db *sql.DB
}

func NewKnowledgeRepo(db *sql.DB) *KnowledgeRepo {
	return &KnowledgeRepo{db: db}
}

func (r *KnowledgeRepo) Save(ctx context.Context, doc core.KnowledgeDoc) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO knowledge (title, content, category) VALUES (?, ?, ?)`,
		doc.Title, doc.Content, doc.Category,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert knowledge entry: %w", err)
	}
	return res.LastInsertId()
}

func (r *KnowledgeRepo) Update(ctx context.Context, doc core.KnowledgeDoc) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE knowledge SET title = ?, content = ?, category = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		doc.Title, doc.Content, doc.Category, doc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update knowledge entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return core.ErrKnowledgeNotFound
	}
	return nil
}

func (r *KnowledgeRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM knowledge WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete knowledge entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return core.ErrKnowledgeNotFound
	}
	return nil
}

// Search matches keyword as a case-insensitive substring of title or
// content. SQLite LIKE is case-insensitive for ASCII by default.
func (r *KnowledgeRepo) Search(ctx context.Context, keyword string) ([]core.KnowledgeDoc, error) {
	pattern := "%" + keyword + "%"
	query := `SELECT id, title, content, category, created_at, updated_at FROM knowledge
		WHERE title LIKE ? OR content LIKE ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("knowledge search failed: %w", err)
	}
	defer rows.Close()

	return scanKnowledge(rows)
}

func (r *KnowledgeRepo) ByCategory(ctx context.Context, category string) ([]core.KnowledgeDoc, error) {
	query := `SELECT id, title, content, category, created_at, updated_at FROM knowledge
		WHERE category = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("knowledge category query failed: %w", err)
	}
	defer rows.Close()

	return scanKnowledge(rows)
}

func scanKnowledge(rows *sql.Rows) ([]core.KnowledgeDoc, error) {
	var docs []core.KnowledgeDoc
	for rows.Next() {
		var doc core.KnowledgeDoc
		var updated sql.NullTime
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Content, &doc.Category, &doc.CreatedAt, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan knowledge entry: %w", err)
		}
		if updated.Valid {
			t := updated.Time
			doc.UpdatedAt = &t
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
