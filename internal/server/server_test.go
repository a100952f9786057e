package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/buffbuds/backend/internal/apperr"
	"github.com/buffbuds/backend/internal/models"
	"github.com/buffbuds/backend/internal/social"
	"github.com/buffbuds/backend/internal/workout"
)

// newTestServer builds a Server over in-memory stores. With no database the
// profile middleware passes through and the dev identity acts as user 1.
func newTestServer(t *testing.T) (*Server, *memStore) {
	t.Helper()
	store := newMemStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(nil, workout.NewService(store, log), social.NewService(store, log), log)
	return s, store
}

// memStore satisfies both workout.Store and social.Store.
type memStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]models.WorkoutSession
	records  map[int]models.PersonalRecords
	profiles map[string]models.Profile
	follows  map[[2]int]bool
	likes    map[string]bool
	posts    map[uuid.UUID]models.Post
	comments map[uuid.UUID][]models.Comment
}

func newMemStore() *memStore {
	return &memStore{
		sessions: make(map[uuid.UUID]models.WorkoutSession),
		records:  make(map[int]models.PersonalRecords),
		profiles: make(map[string]models.Profile),
		follows:  make(map[[2]int]bool),
		likes:    make(map[string]bool),
		posts:    make(map[uuid.UUID]models.Post),
		comments: make(map[uuid.UUID][]models.Comment),
	}
}

func (m *memStore) InsertSession(_ context.Context, s models.WorkoutSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memStore) GetSession(_ context.Context, id uuid.UUID) (models.WorkoutSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return models.WorkoutSession{}, apperr.ErrNotFound
	}
	return s, nil
}

func (m *memStore) UpdateSession(_ context.Context, patch workout.SessionPatch) (models.WorkoutSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[patch.ID]
	if !ok {
		return models.WorkoutSession{}, apperr.ErrNotFound
	}
	if patch.Notes != nil {
		s.Notes = patch.Notes
	}
	if patch.Plan != nil {
		s.Plan = *patch.Plan
	}
	if patch.TotalVolume != nil {
		s.TotalVolume = *patch.TotalVolume
	}
	m.sessions[patch.ID] = s
	return s, nil
}

func (m *memStore) DeleteSession(_ context.Context, id uuid.UUID, userID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.UserID != userID {
		return apperr.ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *memStore) ListSessions(_ context.Context, userID int) ([]models.WorkoutSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.WorkoutSession
	for _, s := range m.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) GetRecords(_ context.Context, userID int) (models.PersonalRecords, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[userID], nil
}

func (m *memStore) RaiseRecord(_ context.Context, userID int, lift models.Lift, weight float64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.records[userID]
	if weight <= r.For(lift) {
		return false, nil
	}
	switch lift {
	case models.LiftBench:
		r.Bench = weight
	case models.LiftSquat:
		r.Squat = weight
	case models.LiftDeadlift:
		r.Deadlift = weight
	}
	m.records[userID] = r
	return true, nil
}

func (m *memStore) addProfile(id int, username string) {
	m.profiles[username] = models.Profile{ID: id, Username: username}
}

func (m *memStore) ResolveHandle(_ context.Context, handle string) (models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[handle]
	if !ok {
		return models.Profile{}, apperr.ErrNotFound
	}
	return p, nil
}

func (m *memStore) InsertFollow(_ context.Context, followerID, followeeID int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := [2]int{followerID, followeeID}
	if m.follows[e] {
		return false, nil
	}
	m.follows[e] = true
	return true, nil
}

func (m *memStore) DeleteFollow(_ context.Context, followerID, followeeID int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := [2]int{followerID, followeeID}
	if !m.follows[e] {
		return false, nil
	}
	delete(m.follows, e)
	return true, nil
}

func (m *memStore) ListFollowers(_ context.Context, userID int) ([]models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Profile
	for e := range m.follows {
		if e[1] == userID {
			out = append(out, models.Profile{ID: e[0]})
		}
	}
	return out, nil
}

func (m *memStore) ListFollowing(_ context.Context, userID int) ([]models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Profile
	for e := range m.follows {
		if e[0] == userID {
			out = append(out, models.Profile{ID: e[1]})
		}
	}
	return out, nil
}

func (m *memStore) InsertLike(_ context.Context, userID int, postID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := likeKey(userID, postID)
	if m.likes[k] {
		return false, nil
	}
	m.likes[k] = true
	return true, nil
}

func (m *memStore) DeleteLike(_ context.Context, userID int, postID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := likeKey(userID, postID)
	if !m.likes[k] {
		return false, nil
	}
	delete(m.likes, k)
	return true, nil
}

func likeKey(userID int, postID uuid.UUID) string {
	return fmt.Sprintf("%s/%d", postID, userID)
}

func (m *memStore) InsertPost(_ context.Context, p models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts[p.ID] = p
	return nil
}

func (m *memStore) GetPost(_ context.Context, id uuid.UUID) (models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return models.Post{}, apperr.ErrNotFound
	}
	return p, nil
}

func (m *memStore) ListPosts(_ context.Context) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Post
	for _, p := range m.posts {
		out = append(out, p)
	}
	return out, nil
}

func (m *memStore) ListPostsByUser(_ context.Context, userID int) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Post
	for _, p := range m.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) UpdatePostContent(_ context.Context, id uuid.UUID, content string) (models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return models.Post{}, apperr.ErrNotFound
	}
	p.Content = content
	m.posts[id] = p
	return p, nil
}

func (m *memStore) DeletePost(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m *memStore) InsertComment(_ context.Context, c models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comments[c.PostID] = append(m.comments[c.PostID], c)
	return nil
}

func (m *memStore) ListComments(_ context.Context, postID uuid.UUID) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.comments[postID], nil
}
