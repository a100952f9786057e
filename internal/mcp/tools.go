package mcp

import (
	"context"
	"time"

	"github.com/buffbuds/backend/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetSessions = mcp.NewTool("get_sessions",
	mcp.WithDescription("Retrieve the user's logged workout sessions, newest first. Each session includes its plan snapshot (exercises with sets) and derived total volume."),
	mcp.WithString("since", mcp.Description("Only sessions logged on or after this date (YYYY-MM-DD). Defaults to all.")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of sessions to return. Defaults to 50.")),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("Get the user's personal records: max weight ever logged for bench, squat, and deadlift."),
)

var toolGetVolumeTrend = mcp.NewTool("get_volume_trend",
	mcp.WithDescription("Total training volume per session over a time range, for plotting progression."),
	mcp.WithString("since", mcp.Description("Start date (YYYY-MM-DD). Defaults to 90 days ago.")),
)

var toolGetFeed = mcp.NewTool("get_feed",
	mcp.WithDescription("Retrieve the social feed: posts with authors and like counts, newest first."),
	mcp.WithNumber("limit", mcp.Description("Maximum number of posts. Defaults to 20.")),
)

// --- Tool handlers ---

func (h *handlers) getSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	sessions, err := h.db.ListSessions(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	if since := req.GetString("since", ""); since != "" {
		cutoff, err := time.Parse("2006-01-02", since)
		if err != nil {
			return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
		}
		sessions = filterSince(sessions, cutoff)
	}

	limit := req.GetInt("limit", 50)
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPersonalRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	records, err := h.db.GetRecords(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_personal_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(records)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

type volumePoint struct {
	Date   string  `json:"date"`
	Name   string  `json:"plan_name"`
	Volume float64 `json:"total_volume"`
}

func (h *handlers) getVolumeTrend(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cutoff := time.Now().AddDate(0, 0, -90)
	if since := req.GetString("since", ""); since != "" {
		parsed, err := time.Parse("2006-01-02", since)
		if err != nil {
			return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
		}
		cutoff = parsed
	}

	uid := UserIDFromContext(ctx)
	sessions, err := h.db.ListSessions(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_volume_trend", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	points := make([]volumePoint, 0, len(sessions))
	for _, s := range filterSince(sessions, cutoff) {
		points = append(points, volumePoint{
			Date:   s.CreatedAt.Format("2006-01-02"),
			Name:   s.Plan.Name,
			Volume: s.TotalVolume,
		})
	}

	result, err := mcp.NewToolResultJSON(points)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getFeed(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	posts, err := h.db.ListPosts(ctx)
	if err != nil {
		h.log.Error("mcp get_feed", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	limit := req.GetInt("limit", 20)
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}

	result, err := mcp.NewToolResultJSON(posts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func filterSince(sessions []models.WorkoutSession, cutoff time.Time) []models.WorkoutSession {
	filtered := sessions[:0:0]
	for _, s := range sessions {
		if !s.CreatedAt.Before(cutoff) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
