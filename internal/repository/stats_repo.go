package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clipdeck/clipdeck-go/internal/model"
)

type StatsRepo struct {
	pool *pgxpool.Pool
}

func NewStatsRepo(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// GetStats returns aggregate platform statistics in one round trip.
func (r *StatsRepo) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM clips) AS total_clips,
			(SELECT COUNT(*) FROM likes) AS total_likes,
			(SELECT COUNT(*) FROM comments) AS total_comments,
			(SELECT COUNT(DISTINCT owner_id) FROM clips) AS total_authors,
			(SELECT COUNT(*) FROM clips WHERE created_at > NOW() - INTERVAL '24 hours') AS clips_24h`

	var stats model.StatsResponse
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalClips, &stats.TotalLikes, &stats.TotalComments,
		&stats.TotalAuthors, &stats.Clips24h,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
