package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/buffbuds/backend/internal/apperr"
	"github.com/buffbuds/backend/internal/models"
	"github.com/jackc/pgx/v5"
)

const profileColumns = `id, login, username, COALESCE(bio, ''), admin, created_at, updated_at`

// prefixedProfileColumns is profileColumns qualified with the "p" alias for
// joins against the follows table.
const prefixedProfileColumns = `p.id, p.login, p.username, COALESCE(p.bio, ''), p.admin, p.created_at, p.updated_at`

// GetOrCreateProfile finds or creates a profile by identity-provider login.
// New profiles get the login as their initial username. Updates last_seen on
// each call.
func (db *DB) GetOrCreateProfile(ctx context.Context, login, displayName string) (models.Profile, error) {
	var p models.Profile
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO user_profiles (login, username, display_name)
		VALUES ($1, $1, $2)
		ON CONFLICT (login) DO UPDATE
			SET last_seen = NOW(), display_name = COALESCE(NULLIF($2, ''), user_profiles.display_name)
		RETURNING `+profileColumns,
		login, displayName,
	).Scan(&p.ID, &p.Login, &p.Username, &p.Bio, &p.Admin, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Profile{}, fmt.Errorf("upserting profile: %w", err)
	}
	return p, nil
}

// GetProfile retrieves a profile by internal ID.
func (db *DB) GetProfile(ctx context.Context, id int) (models.Profile, error) {
	var p models.Profile
	err := db.Pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM user_profiles WHERE id = $1`, id,
	).Scan(&p.ID, &p.Login, &p.Username, &p.Bio, &p.Admin, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Profile{}, fmt.Errorf("profile %d: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("querying profile: %w", err)
	}
	return p, nil
}

// ResolveHandle resolves a username to its profile.
func (db *DB) ResolveHandle(ctx context.Context, handle string) (models.Profile, error) {
	var p models.Profile
	err := db.Pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM user_profiles WHERE username = $1`, handle,
	).Scan(&p.ID, &p.Login, &p.Username, &p.Bio, &p.Admin, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Profile{}, fmt.Errorf("user %q: %w", handle, apperr.ErrNotFound)
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("resolving handle: %w", err)
	}
	return p, nil
}

// ListProfiles returns all profiles, newest first.
func (db *DB) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+profileColumns+` FROM user_profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying profiles: %w", err)
	}
	defer rows.Close()
	return scanProfiles(rows)
}

// UpdateProfile applies a partial profile update. Nil fields keep their
// stored value.
func (db *DB) UpdateProfile(ctx context.Context, id int, username, bio *string) (models.Profile, error) {
	var p models.Profile
	err := db.Pool.QueryRow(ctx, `
		UPDATE user_profiles
		SET username = COALESCE($2, username),
		    bio = COALESCE($3, bio),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING `+profileColumns,
		id, username, bio,
	).Scan(&p.ID, &p.Login, &p.Username, &p.Bio, &p.Admin, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Profile{}, fmt.Errorf("profile %d: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("updating profile: %w", err)
	}
	return p, nil
}

// DeleteProfile removes a profile and, via foreign keys, everything it owns.
func (db *DB) DeleteProfile(ctx context.Context, id int) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM user_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func scanProfiles(rows pgx.Rows) ([]models.Profile, error) {
	var result []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.Login, &p.Username, &p.Bio, &p.Admin, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
