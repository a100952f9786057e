package server

import (
	"log/slog"
	"net/http"

	"github.com/buffbuds/backend/internal/social"
	"github.com/buffbuds/backend/internal/storage"
	"github.com/buffbuds/backend/internal/workout"
	"github.com/go-chi/chi/v5"
	"tailscale.com/client/local"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db       *storage.DB
	workouts *workout.Service
	social   *social.Service
	log      *slog.Logger
	ts       *local.Client
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, workouts *workout.Service, socialSvc *social.Service, log *slog.Logger) *Server {
	s := &Server{
		db:       db,
		workouts: workouts,
		social:   socialSvc,
		log:      log,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// MountMCP mounts the MCP transport under /mcp. Identity flows through the
// same middleware chain as the REST API.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Mount("/mcp", h)
}

// SetTailscale switches identity resolution from the dev fallback to
// Tailscale WhoIs. Must be called before the server starts serving.
func (s *Server) SetTailscale(lc *local.Client) {
	s.ts = lc
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.identity)
	s.router.Use(s.ResolveProfile)

	s.router.Get("/api/v1/status", s.handleStatus)
	s.router.Get("/api/v1/me", s.handleMe)

	s.router.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Get("/", s.handleListSessions)
		r.Get("/{id}", s.handleGetSession)
		r.Put("/{id}", s.handleUpdateSession)
		r.Delete("/{id}", s.handleDeleteSession)
	})

	s.router.Get("/api/v1/records", s.handleGetRecords)

	s.router.Route("/api/v1/plans", func(r chi.Router) {
		r.Post("/", s.handleCreatePlan)
		r.Get("/", s.handleListPlans)
		r.Get("/{id}", s.handleGetPlan)
		r.Put("/{id}", s.handleUpdatePlan)
		r.Delete("/{id}", s.handleDeletePlan)
	})

	s.router.Route("/api/v1/users", func(r chi.Router) {
		r.Get("/", s.handleListUsers)
		r.Get("/{handle}", s.handleGetUser)
		r.Post("/{handle}/follow", s.handleFollow)
		r.Delete("/{handle}/follow", s.handleUnfollow)
		r.Get("/{handle}/followers", s.handleFollowers)
		r.Get("/{handle}/following", s.handleFollowing)
		r.Get("/{handle}/posts", s.handleUserPosts)
	})
	s.router.Put("/api/v1/me", s.handleUpdateMe)

	s.router.Route("/api/v1/posts", func(r chi.Router) {
		r.Post("/", s.handleCreatePost)
		r.Get("/", s.handleListPosts)
		r.Get("/{id}", s.handleGetPost)
		r.Put("/{id}", s.handleUpdatePost)
		r.Delete("/{id}", s.handleDeletePost)
		r.Post("/{id}/like", s.handleLike)
		r.Delete("/{id}/like", s.handleUnlike)
		r.Post("/{id}/comments", s.handleAddComment)
		r.Get("/{id}/comments", s.handleListComments)
	})

	s.router.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Get("/users", s.handleAdminListUsers)
		r.Delete("/users/{id}", s.handleAdminDeleteUser)
		r.Get("/posts", s.handleAdminListPosts)
		r.Delete("/posts/{id}", s.handleAdminDeletePost)
	})
}

// identity picks Tailscale WhoIs when configured, the dev identity otherwise.
func (s *Server) identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.ts != nil {
			TailscaleIdentity(s.ts, s.log)(next).ServeHTTP(w, r)
			return
		}
		DevIdentity(next).ServeHTTP(w, r)
	})
}
