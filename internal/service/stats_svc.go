package service

import (
	"context"

	"github.com/clipdeck/clipdeck-go/internal/model"
	"github.com/clipdeck/clipdeck-go/internal/repository"
)

type StatsService struct {
	repo *repository.StatsRepo
}

func NewStatsService(repo *repository.StatsRepo) *StatsService {
	return &StatsService{repo: repo}
}

// GetStats returns global platform statistics.
func (s *StatsService) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	return s.repo.GetStats(ctx)
}
