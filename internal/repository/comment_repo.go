package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clipdeck/clipdeck-go/internal/model"
)

type CommentRepo struct {
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{pool: pool}
}

// Create inserts a comment and notifies the engagement worker for the
// parent clip.
func (r *CommentRepo) Create(ctx context.Context, c *model.Comment) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO comments (id, clip_id, owner_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.ClipID, c.OwnerID, c.Content, c.CreatedAt); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `SELECT pg_notify('engagement_changes', $1)`, c.ClipID.String()); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// FindByClip returns all comments of a clip, newest first.
func (r *CommentRepo) FindByClip(ctx context.Context, clipID uuid.UUID) ([]model.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, clip_id, owner_id, content, created_at
		FROM comments
		WHERE clip_id = $1
		ORDER BY created_at DESC`, clipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.ClipID, &c.OwnerID, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// CountByClip returns the number of comments on a clip.
func (r *CommentRepo) CountByClip(ctx context.Context, clipID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE clip_id = $1`, clipID).Scan(&n)
	return n, err
}
