package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clipdeck/clipdeck-go/internal/model"
)

type LikeRepo struct {
	pool *pgxpool.Pool
}

func NewLikeRepo(pool *pgxpool.Pool) *LikeRepo {
	return &LikeRepo{pool: pool}
}

// Exists reports whether the (user, target, kind) like is present.
func (r *LikeRepo) Exists(ctx context.Context, userID string, targetID uuid.UUID, kind model.TargetKind) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM likes
			WHERE user_id = $1 AND target_id = $2 AND target_kind = $3)`,
		userID, targetID, kind).Scan(&exists)
	return exists, err
}

// Create inserts a like. The unique index on (user_id, target_id,
// target_kind) absorbs concurrent duplicate toggles; a conflicting
// insert is reported as inserted=false, not as an error. The clip the
// target belongs to is notified so cached engagement gets invalidated.
func (r *LikeRepo) Create(ctx context.Context, like *model.Like, clipID uuid.UUID) (inserted bool, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		INSERT INTO likes (id, user_id, target_id, target_kind, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, target_id, target_kind) DO NOTHING`,
		like.ID, like.UserID, like.TargetID, like.TargetKind, like.CreatedAt)
	if err != nil {
		return false, err
	}

	if _, err := tx.Exec(ctx, `SELECT pg_notify('engagement_changes', $1)`, clipID.String()); err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, tx.Commit(ctx)
}

// Delete removes the (user, target, kind) like if present.
func (r *LikeRepo) Delete(ctx context.Context, userID string, targetID uuid.UUID, kind model.TargetKind, clipID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM likes
		WHERE user_id = $1 AND target_id = $2 AND target_kind = $3`,
		userID, targetID, kind); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `SELECT pg_notify('engagement_changes', $1)`, clipID.String()); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// CountByTarget returns the number of likes on one target.
func (r *LikeRepo) CountByTarget(ctx context.Context, targetID uuid.UUID, kind model.TargetKind) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM likes
		WHERE target_id = $1 AND target_kind = $2`,
		targetID, kind).Scan(&n)
	return n, err
}

// LikedTargets returns which of the given targets the viewer has liked.
func (r *LikeRepo) LikedTargets(ctx context.Context, userID string, targetIDs []uuid.UUID, kind model.TargetKind) (map[uuid.UUID]struct{}, error) {
	liked := make(map[uuid.UUID]struct{})
	if len(targetIDs) == 0 {
		return liked, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT target_id FROM likes
		WHERE user_id = $1 AND target_kind = $2 AND target_id = ANY($3)`,
		userID, kind, targetIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		liked[id] = struct{}{}
	}
	return liked, rows.Err()
}
