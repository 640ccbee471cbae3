package history

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts an enhancement record.
func (r *PGRepo) Create(ctx context.Context, enhancement Enhancement) error {
	const query = `
INSERT INTO enhancements (
    id, user_id, file_name, job_description, recommendation, cover_letter, provider, model, tier, shape, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.DB.ExecContext(ctx, query,
		enhancement.ID,
		enhancement.UserID,
		enhancement.FileName,
		enhancement.JobDescription,
		[]byte(enhancement.Recommendation),
		enhancement.CoverLetter,
		enhancement.Provider,
		enhancement.Model,
		enhancement.Tier,
		enhancement.Shape,
		enhancement.CreatedAt,
	)
	return err
}

// GetByID returns an enhancement by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, enhancementID string) (Enhancement, error) {
	const query = `
SELECT id, user_id, file_name, job_description, recommendation, cover_letter, provider, model, tier, shape, created_at
FROM enhancements
WHERE id = $1
LIMIT 1`
	var enhancement Enhancement
	var recommendation []byte
	err := r.DB.QueryRowContext(ctx, query, enhancementID).Scan(
		&enhancement.ID,
		&enhancement.UserID,
		&enhancement.FileName,
		&enhancement.JobDescription,
		&recommendation,
		&enhancement.CoverLetter,
		&enhancement.Provider,
		&enhancement.Model,
		&enhancement.Tier,
		&enhancement.Shape,
		&enhancement.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Enhancement{}, ErrNotFound
		}
		return Enhancement{}, err
	}
	enhancement.Recommendation = recommendation
	if enhancement.UserID != userID {
		return Enhancement{}, ErrForbidden
	}
	return enhancement, nil
}

// ListByUser lists enhancements ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Enhancement, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, file_name, job_description, recommendation, cover_letter, provider, model, tier, shape, created_at
FROM enhancements
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Enhancement{}
	for rows.Next() {
		var enhancement Enhancement
		var recommendation []byte
		if err := rows.Scan(
			&enhancement.ID,
			&enhancement.UserID,
			&enhancement.FileName,
			&enhancement.JobDescription,
			&recommendation,
			&enhancement.CoverLetter,
			&enhancement.Provider,
			&enhancement.Model,
			&enhancement.Tier,
			&enhancement.Shape,
			&enhancement.CreatedAt,
		); err != nil {
			return nil, err
		}
		enhancement.Recommendation = recommendation
		out = append(out, enhancement)
	}
	return out, rows.Err()
}

// ReassignUser moves all enhancements from one user to another.
func (r *PGRepo) ReassignUser(ctx context.Context, fromUserID, toUserID string) (int, error) {
	const query = `UPDATE enhancements SET user_id = $1 WHERE user_id = $2`
	result, err := r.DB.ExecContext(ctx, query, toUserID, fromUserID)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

var _ Repo = (*PGRepo)(nil)
