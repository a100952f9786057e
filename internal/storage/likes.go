package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// InsertLike inserts a like edge if absent. Returns true if a new edge was
// created. Uniqueness on (user_id, post_id) keeps concurrent likes to a
// single edge.
func (db *DB) InsertLike(ctx context.Context, userID int, postID uuid.UUID) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO likes (user_id, post_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		userID, postID)
	if err != nil {
		return false, fmt.Errorf("inserting like: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteLike removes a like edge if present. Returns true if an edge was
// removed.
func (db *DB) DeleteLike(ctx context.Context, userID int, postID uuid.UUID) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM likes WHERE user_id = $1 AND post_id = $2`,
		userID, postID)
	if err != nil {
		return false, fmt.Errorf("deleting like: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
