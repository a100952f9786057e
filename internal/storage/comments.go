package storage

import (
	"context"
	"fmt"

	"github.com/buffbuds/backend/internal/models"
	"github.com/google/uuid"
)

// InsertComment inserts a comment row. Comments live in their own table;
// appending never rewrites the post row.
func (db *DB) InsertComment(ctx context.Context, c models.Comment) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO comments (id, post_id, user_id, body, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.PostID, c.UserID, c.Text, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting comment: %w", err)
	}
	return nil
}

// ListComments retrieves a post's comments, oldest first.
func (db *DB) ListComments(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT c.id, c.post_id, c.user_id, p.username, c.body, c.created_at
		 FROM comments c JOIN user_profiles p ON p.id = c.user_id
		 WHERE c.post_id = $1
		 ORDER BY c.created_at ASC`, postID)
	if err != nil {
		return nil, fmt.Errorf("querying comments: %w", err)
	}
	defer rows.Close()

	var result []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Username, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
