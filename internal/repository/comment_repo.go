package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"innovation_showcase/internal/models"
)

type CommentSQLite struct {
	db *sql.DB
}

func NewCommentSQLite(db *sql.DB) *CommentSQLite { return &CommentSQLite{db: db} }

var _ Comments = (*CommentSQLite)(nil)

const (
	insertCommentSQL = `INSERT INTO comments (id, project_id, user_id, content, created_at) VALUES (?, ?, ?, ?, ?)`

	selectCommentsByProjectSQL = `
		SELECT id, project_id, user_id, content, created_at
		FROM comments WHERE project_id = ? ORDER BY rowid ASC
	`
)

// Add appends a comment. The project id is not checked.
func (r *CommentSQLite) Add(ctx context.Context, c models.Comment) error {
	created := c.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.db.ExecContext(ctx, insertCommentSQL, c.ID, c.ProjectID, c.UserID, c.Content, created.UTC())
	if err != nil {
		return fmt.Errorf("insert comment for project %q: %w", c.ProjectID, err)
	}
	return nil
}

// ListByProject returns comments in insertion order; never nil.
func (r *CommentSQLite) ListByProject(ctx context.Context, projectID string) ([]models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, selectCommentsByProjectSQL, projectID)
	if err != nil {
		return nil, fmt.Errorf("list comments for project %q: %w", projectID, err)
	}
	defer rows.Close()

	out := make([]models.Comment, 0, 8)
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.UserID, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		c.CreatedAt = c.CreatedAt.UTC()
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list comments for project %q: %w", projectID, err)
	}
	return out, nil
}
