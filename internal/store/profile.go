package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vidyayathra/tutor/internal/learner"
)

// ProfileRepo persists per-learner profiles. Load returns (nil, nil) for
// an unknown learner; callers create a fresh profile in that case.
type ProfileRepo interface {
	Load(ctx context.Context, learnerID string) (*learner.Profile, error)
	Save(ctx context.Context, learnerID string, p *learner.Profile) error

	// Delete removes the learner's profile. Deleting an unknown learner
	// is not an error.
	Delete(ctx context.Context, learnerID string) error
}

// profileRepo implements ProfileRepo over SQLite. The profile is stored
// as a JSON document per learner row.
type profileRepo struct {
	db *sql.DB
}

func (r *profileRepo) Load(ctx context.Context, learnerID string) (*learner.Profile, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT profile FROM learner_profiles WHERE learner_id = ?`, learnerID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	var p learner.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

func (r *profileRepo) Save(ctx context.Context, learnerID string, p *learner.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO learner_profiles (learner_id, profile, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (learner_id) DO UPDATE SET
			profile = excluded.profile,
			updated_at = excluded.updated_at`,
		learnerID, string(raw), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (r *profileRepo) Delete(ctx context.Context, learnerID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM learner_profiles WHERE learner_id = ?`, learnerID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
