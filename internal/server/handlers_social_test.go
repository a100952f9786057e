package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/buffbuds/backend/internal/models"
	"github.com/buffbuds/backend/internal/social"
)

func TestFollowEndpoints(t *testing.T) {
	s, store := newTestServer(t)
	store.addProfile(1, "alice")
	store.addProfile(2, "bob")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/users/bob/follow", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("follow status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	var result social.ToggleResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if !result.Changed {
		t.Error("first follow: changed = false, want true")
	}

	// Repeat follow is a 200 no-op.
	rec = doJSON(t, s, http.MethodPost, "/api/v1/users/bob/follow", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("repeat follow status = %d, want 200", rec.Code)
	}
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Changed {
		t.Error("repeat follow: changed = true, want false")
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/users/bob/followers", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("followers status = %d, want 200", rec.Code)
	}
	var followers []models.Profile
	if err := json.NewDecoder(rec.Body).Decode(&followers); err != nil {
		t.Fatal(err)
	}
	if len(followers) != 1 {
		t.Errorf("len(followers) = %d, want 1", len(followers))
	}

	rec = doJSON(t, s, http.MethodDelete, "/api/v1/users/bob/follow", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unfollow status = %d, want 200", rec.Code)
	}
}

// TestFollowSelfConflict verifies following yourself is rejected with 409.
func TestFollowSelfConflict(t *testing.T) {
	s, store := newTestServer(t)
	store.addProfile(1, "alice")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/users/alice/follow", "")
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestFollowUnknownUser(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/v1/users/ghost/follow", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestPostLifecycleEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/posts", `{"title": "PR day", "content": "new squat record"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	var post models.Post
	if err := json.NewDecoder(rec.Body).Decode(&post); err != nil {
		t.Fatal(err)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/posts/"+post.ID.String(), "")
	if rec.Code != http.StatusOK {
		t.Errorf("get status = %d, want 200", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPut, "/api/v1/posts/"+post.ID.String(), `{"content": "edited"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200", rec.Code)
	}
	var updated models.Post
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatal(err)
	}
	if updated.Content != "edited" {
		t.Errorf("content = %q, want %q", updated.Content, "edited")
	}

	rec = doJSON(t, s, http.MethodDelete, "/api/v1/posts/"+post.ID.String(), "")
	if rec.Code != http.StatusOK {
		t.Errorf("delete status = %d, want 200", rec.Code)
	}
	rec = doJSON(t, s, http.MethodGet, "/api/v1/posts/"+post.ID.String(), "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestCreatePostEmptyContent(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/v1/posts", `{"title": "x", "content": "  "}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestLikeEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/posts", `{"title": "t", "content": "c"}`)
	var post models.Post
	if err := json.NewDecoder(rec.Body).Decode(&post); err != nil {
		t.Fatal(err)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/v1/posts/"+post.ID.String()+"/like", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("like status = %d, want 200", rec.Code)
	}
	var result social.ToggleResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if !result.Changed {
		t.Error("first like: changed = false, want true")
	}

	rec = doJSON(t, s, http.MethodPost, "/api/v1/posts/"+post.ID.String()+"/like", "")
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Changed {
		t.Error("repeat like: changed = true, want false")
	}

	rec = doJSON(t, s, http.MethodDelete, "/api/v1/posts/"+post.ID.String()+"/like", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unlike status = %d, want 200", rec.Code)
	}
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if !result.Changed {
		t.Error("unlike: changed = false, want true")
	}
}

func TestLikeMissingPostEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/v1/posts/00000000-0000-0000-0000-000000000001/like", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCommentEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/posts", `{"title": "t", "content": "c"}`)
	var post models.Post
	if err := json.NewDecoder(rec.Body).Decode(&post); err != nil {
		t.Fatal(err)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/v1/posts/"+post.ID.String()+"/comments", `{"text": "nice lift"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("comment status = %d, want 201", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/v1/posts/"+post.ID.String()+"/comments", `{"text": ""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty comment status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/posts/"+post.ID.String()+"/comments", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list comments status = %d, want 200", rec.Code)
	}
	var comments []models.Comment
	if err := json.NewDecoder(rec.Body).Decode(&comments); err != nil {
		t.Fatal(err)
	}
	if len(comments) != 1 {
		t.Errorf("len(comments) = %d, want 1", len(comments))
	}
}
