// Package workout implements the activity ledger: payload validation,
// volume aggregation, personal-record derivation, and the create/update
// orchestration that keeps derived state consistent with what is stored.
package workout

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/buffbuds/backend/internal/apperr"
	"github.com/buffbuds/backend/internal/models"
	"github.com/buffbuds/backend/internal/schema"
	"github.com/google/uuid"
)

// SessionPatch is the partial update handed to the store. Nil fields keep
// their stored value. TotalVolume is set whenever Plan is set, computed from
// the plan value being written.
type SessionPatch struct {
	ID          uuid.UUID
	UserID      int
	Notes       *string
	Plan        *models.WorkoutPlan
	TotalVolume *float64
}

// Store is the persistence surface the ledger needs. *storage.DB satisfies
// it; tests use an in-memory fake.
type Store interface {
	InsertSession(ctx context.Context, s models.WorkoutSession) error
	GetSession(ctx context.Context, id uuid.UUID) (models.WorkoutSession, error)
	UpdateSession(ctx context.Context, patch SessionPatch) (models.WorkoutSession, error)
	DeleteSession(ctx context.Context, id uuid.UUID, userID int) error
	ListSessions(ctx context.Context, userID int) ([]models.WorkoutSession, error)
	GetRecords(ctx context.Context, userID int) (models.PersonalRecords, error)
	// RaiseRecord sets the lift's record to weight only if weight exceeds
	// the stored value. Returns whether the write was applied.
	RaiseRecord(ctx context.Context, userID int, lift models.Lift, weight float64) (bool, error)
}

// Service orchestrates session writes and the derived-state updates that
// follow them.
type Service struct {
	store Store
	log   *slog.Logger
}

// NewService creates a ledger service.
func NewService(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

// CreateSession validates the payload, computes total volume, persists the
// session, and then raises any personal records the session beats. The PR
// update is best-effort: a failure after the session row is written is
// logged and the session stands, since the conditional record writes are
// independently retryable.
func (s *Service) CreateSession(ctx context.Context, userID int, req models.SessionCreate) (models.WorkoutSession, error) {
	if err := schema.ValidateSessionCreate(req); err != nil {
		return models.WorkoutSession{}, err
	}

	session := models.WorkoutSession{
		ID:          uuid.New(),
		UserID:      userID,
		CreatedAt:   time.Now().UTC(),
		SessionDate: req.SessionDate,
		Notes:       req.Notes,
		Plan:        req.Plan,
		TotalVolume: TotalVolume(req.Plan),
	}

	if err := s.store.InsertSession(ctx, session); err != nil {
		return models.WorkoutSession{}, apperr.WriteFailed("inserting session", err)
	}

	s.raiseRecords(ctx, userID, session.Plan.Exercises)

	return session, nil
}

// raiseRecords derives and applies personal-record updates for a just-logged
// session. Errors are logged, not returned: record state is eventually
// consistent and the next qualifying session will raise it again.
func (s *Service) raiseRecords(ctx context.Context, userID int, exercises []models.Exercise) {
	current, err := s.store.GetRecords(ctx, userID)
	if err != nil {
		s.log.Warn("fetching personal records failed, skipping PR update", "user_id", userID, "error", err)
		return
	}

	for lift, weight := range DeriveRecordUpdates(current, exercises) {
		applied, err := s.store.RaiseRecord(ctx, userID, lift, weight)
		if err != nil {
			s.log.Warn("personal record update failed", "user_id", userID, "lift", lift, "error", err)
			continue
		}
		if applied {
			s.log.Info("personal record raised", "user_id", userID, "lift", lift, "weight", weight)
		}
	}
}

// UpdateSession applies a partial update to a session the caller owns.
// Replacing the plan revalidates it and recomputes total volume from the
// new plan; a notes-only update leaves plan and volume untouched.
func (s *Service) UpdateSession(ctx context.Context, userID int, id uuid.UUID, req models.SessionUpdate) (models.WorkoutSession, error) {
	if err := schema.ValidateSessionUpdate(req); err != nil {
		return models.WorkoutSession{}, err
	}

	stored, err := s.store.GetSession(ctx, id)
	if err != nil {
		return models.WorkoutSession{}, err
	}
	if stored.UserID != userID {
		return models.WorkoutSession{}, apperr.ErrForbidden
	}

	patch := SessionPatch{ID: id, UserID: userID, Notes: req.Notes}
	if req.Plan != nil {
		patch.Plan = req.Plan
		vol := TotalVolume(*req.Plan)
		patch.TotalVolume = &vol
	}

	updated, err := s.store.UpdateSession(ctx, patch)
	if err != nil {
		return models.WorkoutSession{}, apperr.WriteFailed("updating session", err)
	}
	return updated, nil
}

// DeleteSession removes a session the caller owns. Deleting an absent or
// already-deleted session reports ErrNotFound.
func (s *Service) DeleteSession(ctx context.Context, userID int, id uuid.UUID) error {
	stored, err := s.store.GetSession(ctx, id)
	if err != nil {
		return err
	}
	if stored.UserID != userID {
		return apperr.ErrForbidden
	}
	return s.store.DeleteSession(ctx, id, userID)
}

// GetSession returns one of the caller's sessions.
func (s *Service) GetSession(ctx context.Context, userID int, id uuid.UUID) (models.WorkoutSession, error) {
	stored, err := s.store.GetSession(ctx, id)
	if err != nil {
		return models.WorkoutSession{}, err
	}
	if stored.UserID != userID {
		return models.WorkoutSession{}, apperr.ErrForbidden
	}
	return stored, nil
}

// ListSessions returns the caller's sessions, newest first.
func (s *Service) ListSessions(ctx context.Context, userID int) ([]models.WorkoutSession, error) {
	sessions, err := s.store.ListSessions(ctx, userID)
	if err != nil {
		return nil, apperr.Unavailable("listing sessions", err)
	}
	return sessions, nil
}

// Records returns the caller's personal records.
func (s *Service) Records(ctx context.Context, userID int) (models.PersonalRecords, error) {
	records, err := s.store.GetRecords(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return models.PersonalRecords{}, err
		}
		return models.PersonalRecords{}, apperr.Unavailable("fetching records", err)
	}
	return records, nil
}
