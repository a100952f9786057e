package storage

import (
	"context"
	"fmt"

	"github.com/buffbuds/backend/internal/models"
)

// InsertFollow inserts a follow edge if absent. Returns true if a new edge
// was created, false if it already existed. The primary key on
// (follower_id, followee_id) makes concurrent inserts converge on one edge.
func (db *DB) InsertFollow(ctx context.Context, followerID, followeeID int) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO follows (follower_id, followee_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("inserting follow: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteFollow removes a follow edge if present. Returns true if an edge was
// removed.
func (db *DB) DeleteFollow(ctx context.Context, followerID, followeeID int) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`,
		followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("deleting follow: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListFollowers retrieves the profiles following userID.
func (db *DB) ListFollowers(ctx context.Context, userID int) ([]models.Profile, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+prefixedProfileColumns+`
		 FROM follows f JOIN user_profiles p ON p.id = f.follower_id
		 WHERE f.followee_id = $1
		 ORDER BY f.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying followers: %w", err)
	}
	defer rows.Close()
	return scanProfiles(rows)
}

// ListFollowing retrieves the profiles userID follows.
func (db *DB) ListFollowing(ctx context.Context, userID int) ([]models.Profile, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+prefixedProfileColumns+`
		 FROM follows f JOIN user_profiles p ON p.id = f.followee_id
		 WHERE f.follower_id = $1
		 ORDER BY f.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying following: %w", err)
	}
	defer rows.Close()
	return scanProfiles(rows)
}
