package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/clipdeck/clipdeck-go/internal/model"
)

// Store interfaces consumed by the services. The pgx repositories in
// internal/repository satisfy them; tests use in-memory fakes.

type ClipStore interface {
	Create(ctx context.Context, c *model.Clip) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Clip, error)
	FindPage(ctx context.Context, offset, limit int) ([]model.Clip, error)
	CountAll(ctx context.Context) (int, error)
	FindByOwner(ctx context.Context, ownerID string) ([]model.Clip, error)
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type LikeStore interface {
	Exists(ctx context.Context, userID string, targetID uuid.UUID, kind model.TargetKind) (bool, error)
	Create(ctx context.Context, like *model.Like, clipID uuid.UUID) (inserted bool, err error)
	Delete(ctx context.Context, userID string, targetID uuid.UUID, kind model.TargetKind, clipID uuid.UUID) error
	CountByTarget(ctx context.Context, targetID uuid.UUID, kind model.TargetKind) (int, error)
	LikedTargets(ctx context.Context, userID string, targetIDs []uuid.UUID, kind model.TargetKind) (map[uuid.UUID]struct{}, error)
}

type CommentStore interface {
	Create(ctx context.Context, c *model.Comment) error
	FindByClip(ctx context.Context, clipID uuid.UUID) ([]model.Comment, error)
	CountByClip(ctx context.Context, clipID uuid.UUID) (int, error)
}
