package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/buffbuds/backend/internal/apperr"
	"github.com/buffbuds/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// postColumns selects a post joined with its author's username and a live
// like count. Counting the likes table on read avoids a stored counter that
// concurrent likes would have to coordinate on.
const postColumns = `
	po.id, po.user_id, p.username, po.title, po.content, po.created_at,
	(SELECT COUNT(*) FROM likes l WHERE l.post_id = po.id) AS like_count`

const postFrom = ` FROM posts po JOIN user_profiles p ON p.id = po.user_id`

// InsertPost inserts a post row.
func (db *DB) InsertPost(ctx context.Context, post models.Post) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO posts (id, user_id, title, content, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		post.ID, post.UserID, post.Title, post.Content, post.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting post: %w", err)
	}
	return nil
}

// GetPost retrieves a post by ID with author and like count.
func (db *DB) GetPost(ctx context.Context, id uuid.UUID) (models.Post, error) {
	row := db.Pool.QueryRow(ctx, `SELECT`+postColumns+postFrom+` WHERE po.id = $1`, id)
	post, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Post{}, fmt.Errorf("post %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return models.Post{}, fmt.Errorf("querying post: %w", err)
	}
	return post, nil
}

// ListPosts retrieves the global feed, newest first.
func (db *DB) ListPosts(ctx context.Context) ([]models.Post, error) {
	rows, err := db.Pool.Query(ctx, `SELECT`+postColumns+postFrom+` ORDER BY po.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying posts: %w", err)
	}
	defer rows.Close()
	return scanPosts(rows)
}

// ListPostsByUser retrieves one user's posts, newest first.
func (db *DB) ListPostsByUser(ctx context.Context, userID int) ([]models.Post, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT`+postColumns+postFrom+` WHERE po.user_id = $1 ORDER BY po.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying user posts: %w", err)
	}
	defer rows.Close()
	return scanPosts(rows)
}

// UpdatePostContent replaces a post's content.
func (db *DB) UpdatePostContent(ctx context.Context, id uuid.UUID, content string) (models.Post, error) {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE posts SET content = $2 WHERE id = $1`, id, content)
	if err != nil {
		return models.Post{}, fmt.Errorf("updating post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.Post{}, fmt.Errorf("post %s: %w", id, apperr.ErrNotFound)
	}
	return db.GetPost(ctx, id)
}

// DeletePost removes a post and, via foreign keys, its likes and comments.
func (db *DB) DeletePost(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("post %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func scanPost(row pgx.Row) (models.Post, error) {
	var post models.Post
	err := row.Scan(&post.ID, &post.UserID, &post.Username, &post.Title,
		&post.Content, &post.CreatedAt, &post.LikeCount)
	return post, err
}

func scanPosts(rows pgx.Rows) ([]models.Post, error) {
	var result []models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		result = append(result, post)
	}
	return result, rows.Err()
}
