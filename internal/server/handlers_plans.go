package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/buffbuds/backend/internal/models"
	"github.com/buffbuds/backend/internal/schema"
	"github.com/google/uuid"
)

type planRequest struct {
	Plan models.WorkoutPlan `json:"workout_plan"`
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w, err)
		return
	}
	if fields := schema.ValidatePlan("workout_plan", req.Plan); len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, &schema.ValidationError{Fields: fields})
		return
	}

	now := time.Now().UTC()
	sp := models.SavedPlan{
		ID:        uuid.New(),
		UserID:    userIDFromContext(r),
		Plan:      req.Plan,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.InsertSavedPlan(r.Context(), sp); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sp)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.db.ListSavedPlans(r.Context(), userIDFromContext(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if plans == nil {
		plans = []models.SavedPlan{}
	}
	writeJSON(w, http.StatusOK, plans)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	sp, err := s.db.GetSavedPlan(r.Context(), id, userIDFromContext(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sp)
}

func (s *Server) handleUpdatePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w, err)
		return
	}
	if fields := schema.ValidatePlan("workout_plan", req.Plan); len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, &schema.ValidationError{Fields: fields})
		return
	}

	sp, err := s.db.UpdateSavedPlan(r.Context(), id, userIDFromContext(r), req.Plan)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sp)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := s.db.DeleteSavedPlan(r.Context(), id, userIDFromContext(r)); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "plan deleted"})
}
