// Package social implements the relationship graph: follows between users,
// likes on posts, and the posts and comments they attach to. Follow and like
// are idempotent toggles; repeating a toggle is never an error.
package social

import (
	"context"
	"log/slog"
	"time"

	"github.com/buffbuds/backend/internal/apperr"
	"github.com/buffbuds/backend/internal/models"
	"github.com/google/uuid"
)

// Store is the persistence surface the social graph needs. Edge inserts are
// insert-if-absent and deletes are delete-if-present, both reporting whether
// anything changed, so concurrent toggles converge without duplicates.
type Store interface {
	ResolveHandle(ctx context.Context, handle string) (models.Profile, error)
	InsertFollow(ctx context.Context, followerID, followeeID int) (bool, error)
	DeleteFollow(ctx context.Context, followerID, followeeID int) (bool, error)
	ListFollowers(ctx context.Context, userID int) ([]models.Profile, error)
	ListFollowing(ctx context.Context, userID int) ([]models.Profile, error)

	InsertLike(ctx context.Context, userID int, postID uuid.UUID) (bool, error)
	DeleteLike(ctx context.Context, userID int, postID uuid.UUID) (bool, error)

	InsertPost(ctx context.Context, p models.Post) error
	GetPost(ctx context.Context, id uuid.UUID) (models.Post, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	ListPostsByUser(ctx context.Context, userID int) ([]models.Post, error)
	UpdatePostContent(ctx context.Context, id uuid.UUID, content string) (models.Post, error)
	DeletePost(ctx context.Context, id uuid.UUID) error

	InsertComment(ctx context.Context, c models.Comment) error
	ListComments(ctx context.Context, postID uuid.UUID) ([]models.Comment, error)
}

// ToggleResult reports whether a toggle changed anything. Changed=false is
// still success: the edge was already in the requested state.
type ToggleResult struct {
	Changed bool `json:"changed"`
}

// Service implements follow/like toggles and post operations.
type Service struct {
	store Store
	log   *slog.Logger
}

// NewService creates a social service.
func NewService(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

// Follow creates a follow edge from the caller to the user behind handle.
// Following yourself is rejected; following someone you already follow is a
// no-op success.
func (s *Service) Follow(ctx context.Context, followerID int, handle string) (ToggleResult, error) {
	target, err := s.store.ResolveHandle(ctx, handle)
	if err != nil {
		return ToggleResult{}, err
	}
	if target.ID == followerID {
		return ToggleResult{}, apperr.ErrInvalidOperation
	}

	created, err := s.store.InsertFollow(ctx, followerID, target.ID)
	if err != nil {
		return ToggleResult{}, apperr.Unavailable("inserting follow edge", err)
	}
	return ToggleResult{Changed: created}, nil
}

// Unfollow removes a follow edge. Unfollowing someone you don't follow is a
// no-op success.
func (s *Service) Unfollow(ctx context.Context, followerID int, handle string) (ToggleResult, error) {
	target, err := s.store.ResolveHandle(ctx, handle)
	if err != nil {
		return ToggleResult{}, err
	}

	removed, err := s.store.DeleteFollow(ctx, followerID, target.ID)
	if err != nil {
		return ToggleResult{}, apperr.Unavailable("deleting follow edge", err)
	}
	return ToggleResult{Changed: removed}, nil
}

// Followers lists the users following handle. An empty list is not an error.
func (s *Service) Followers(ctx context.Context, handle string) ([]models.Profile, error) {
	target, err := s.store.ResolveHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	followers, err := s.store.ListFollowers(ctx, target.ID)
	if err != nil {
		return nil, apperr.Unavailable("listing followers", err)
	}
	return followers, nil
}

// Following lists the users handle follows.
func (s *Service) Following(ctx context.Context, handle string) ([]models.Profile, error) {
	target, err := s.store.ResolveHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	following, err := s.store.ListFollowing(ctx, target.ID)
	if err != nil {
		return nil, apperr.Unavailable("listing following", err)
	}
	return following, nil
}

// Like adds the caller's like to a post. Liking twice leaves exactly one
// like edge.
func (s *Service) Like(ctx context.Context, userID int, postID uuid.UUID) (ToggleResult, error) {
	if _, err := s.store.GetPost(ctx, postID); err != nil {
		return ToggleResult{}, err
	}
	created, err := s.store.InsertLike(ctx, userID, postID)
	if err != nil {
		return ToggleResult{}, apperr.Unavailable("inserting like edge", err)
	}
	return ToggleResult{Changed: created}, nil
}

// Unlike removes the caller's like from a post. Removing an absent like is a
// no-op success.
func (s *Service) Unlike(ctx context.Context, userID int, postID uuid.UUID) (ToggleResult, error) {
	if _, err := s.store.GetPost(ctx, postID); err != nil {
		return ToggleResult{}, err
	}
	removed, err := s.store.DeleteLike(ctx, userID, postID)
	if err != nil {
		return ToggleResult{}, apperr.Unavailable("deleting like edge", err)
	}
	return ToggleResult{Changed: removed}, nil
}

// CreatePost publishes a new post by the caller.
func (s *Service) CreatePost(ctx context.Context, userID int, title, content string) (models.Post, error) {
	post := models.Post{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.InsertPost(ctx, post); err != nil {
		return models.Post{}, apperr.WriteFailed("inserting post", err)
	}
	return post, nil
}

// GetPost returns a single post.
func (s *Service) GetPost(ctx context.Context, id uuid.UUID) (models.Post, error) {
	return s.store.GetPost(ctx, id)
}

// ListPosts returns the global feed, newest first.
func (s *Service) ListPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := s.store.ListPosts(ctx)
	if err != nil {
		return nil, apperr.Unavailable("listing posts", err)
	}
	return posts, nil
}

// ListPostsByUser returns the posts of the user behind handle.
func (s *Service) ListPostsByUser(ctx context.Context, handle string) ([]models.Post, error) {
	target, err := s.store.ResolveHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	posts, err := s.store.ListPostsByUser(ctx, target.ID)
	if err != nil {
		return nil, apperr.Unavailable("listing user posts", err)
	}
	return posts, nil
}

// UpdatePost edits a post's content. Only the author may edit.
func (s *Service) UpdatePost(ctx context.Context, userID int, id uuid.UUID, content string) (models.Post, error) {
	stored, err := s.store.GetPost(ctx, id)
	if err != nil {
		return models.Post{}, err
	}
	if stored.UserID != userID {
		return models.Post{}, apperr.ErrForbidden
	}
	updated, err := s.store.UpdatePostContent(ctx, id, content)
	if err != nil {
		return models.Post{}, apperr.WriteFailed("updating post", err)
	}
	return updated, nil
}

// DeletePost removes a post. The author or an admin may delete.
func (s *Service) DeletePost(ctx context.Context, userID int, admin bool, id uuid.UUID) error {
	stored, err := s.store.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if stored.UserID != userID && !admin {
		return apperr.ErrForbidden
	}
	return s.store.DeletePost(ctx, id)
}

// AddComment attaches a comment to a post.
func (s *Service) AddComment(ctx context.Context, userID int, postID uuid.UUID, text string) (models.Comment, error) {
	if _, err := s.store.GetPost(ctx, postID); err != nil {
		return models.Comment{}, err
	}
	comment := models.Comment{
		ID:        uuid.New(),
		PostID:    postID,
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.InsertComment(ctx, comment); err != nil {
		return models.Comment{}, apperr.WriteFailed("inserting comment", err)
	}
	return comment, nil
}

// ListComments returns a post's comments, oldest first.
func (s *Service) ListComments(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	if _, err := s.store.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.store.ListComments(ctx, postID)
	if err != nil {
		return nil, apperr.Unavailable("listing comments", err)
	}
	return comments, nil
}
