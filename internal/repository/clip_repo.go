package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clipdeck/clipdeck-go/internal/apperr"
	"github.com/clipdeck/clipdeck-go/internal/model"
)

type ClipRepo struct {
	pool *pgxpool.Pool
}

func NewClipRepo(pool *pgxpool.Pool) *ClipRepo {
	return &ClipRepo{pool: pool}
}

const clipColumns = `id, owner_id, title, description, source_url,
	video_id, media_title, thumbnail, duration, start_seconds, end_seconds, created_at`

func scanClip(row pgx.Row) (*model.Clip, error) {
	var c model.Clip
	err := row.Scan(
		&c.ID, &c.OwnerID, &c.Title, &c.Description, &c.SourceURL,
		&c.Media.VideoID, &c.Media.Title, &c.Media.Thumbnail, &c.Media.Duration,
		&c.Media.StartSeconds, &c.Media.EndSeconds, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a new clip row.
func (r *ClipRepo) Create(ctx context.Context, c *model.Clip) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO clips (id, owner_id, title, description, source_url,
			video_id, media_title, thumbnail, duration, start_seconds, end_seconds, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		c.ID, c.OwnerID, c.Title, c.Description, c.SourceURL,
		c.Media.VideoID, c.Media.Title, c.Media.Thumbnail, c.Media.Duration,
		c.Media.StartSeconds, c.Media.EndSeconds, c.CreatedAt,
	)
	return err
}

// FindByID returns a single clip or apperr.ErrNotFound.
func (r *ClipRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Clip, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+clipColumns+` FROM clips WHERE id = $1`, id)
	return scanClip(row)
}

// FindPage returns one page of clips ordered by creation time descending.
func (r *ClipRepo) FindPage(ctx context.Context, offset, limit int) ([]model.Clip, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+clipColumns+`
		FROM clips
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectClips(rows)
}

// CountAll returns the total number of clips.
func (r *ClipRepo) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM clips`).Scan(&n)
	return n, err
}

// FindByOwner returns all clips of one author, newest first.
func (r *ClipRepo) FindByOwner(ctx context.Context, ownerID string) ([]model.Clip, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+clipColumns+`
		FROM clips
		WHERE owner_id = $1
		ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectClips(rows)
}

// DeleteCascade removes a clip together with its comments and
// clip-kind likes in one transaction, so a crash cannot leave orphaned
// engagement rows behind.
func (r *ClipRepo) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE clip_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
		DELETE FROM likes WHERE target_id = $1 AND target_kind = $2`,
		id, model.TargetClip); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM clips WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `SELECT pg_notify('engagement_changes', $1)`, id.String()); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func collectClips(rows pgx.Rows) ([]model.Clip, error) {
	var clips []model.Clip
	for rows.Next() {
		c, err := scanClip(rows)
		if err != nil {
			return nil, err
		}
		clips = append(clips, *c)
	}
	return clips, rows.Err()
}
