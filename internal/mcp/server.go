// Package mcp exposes BuffBuds training data to MCP clients: sessions,
// personal records, volume trends, and the social feed.
package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/buffbuds/backend/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(db *storage.DB, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("BuffBuds", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("BuffBuds fitness data server. Query workout sessions, training volume, personal records, and the social feed. All training data is scoped to the authenticated user."),
	)

	h := &handlers{db: db, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetSessions, Handler: h.getSessions},
		server.ServerTool{Tool: toolGetPersonalRecords, Handler: h.getPersonalRecords},
		server.ServerTool{Tool: toolGetVolumeTrend, Handler: h.getVolumeTrend},
		server.ServerTool{Tool: toolGetFeed, Handler: h.getFeed},
	)

	s.AddResources(
		server.ServerResource{Resource: resRecentSessions, Handler: h.recentSessions},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	db  *storage.DB
	log *slog.Logger
}

var resRecentSessions = mcp.NewResource(
	"buffbuds://recent_sessions",
	"Recent Sessions",
	mcp.WithResourceDescription("The user's most recently logged workout sessions with plans and total volume"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) recentSessions(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)
	sessions, err := h.db.ListSessions(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(sessions) > 10 {
		sessions = sessions[:10]
	}

	data, err := json.Marshal(sessions)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      resRecentSessions.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
