package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/clipdeck/clipdeck-go/internal/model"
)

// EngagementService aggregates like/comment counts and per-viewer
// liked state from the independent engagement stores. There is no join
// and no denormalized counter; every read counts live. Viewer identity
// is resolved once per request by the auth middleware and passed in as
// a plain user ID (empty string = anonymous).
type EngagementService struct {
	likes    LikeStore
	comments CommentStore
}

func NewEngagementService(likes LikeStore, comments CommentStore) *EngagementService {
	return &EngagementService{likes: likes, comments: comments}
}

// CountsFor returns the like count for any target and, for clips, the
// comment count. The two counting queries are independent and run
// concurrently.
func (s *EngagementService) CountsFor(ctx context.Context, targetID uuid.UUID, kind model.TargetKind) (likes, comments int, err error) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.likes.CountByTarget(gctx, targetID, kind)
		likes = n
		return err
	})

	if kind == model.TargetClip {
		g.Go(func() error {
			n, err := s.comments.CountByClip(gctx, targetID)
			comments = n
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return 0, 0, err
	}
	return likes, comments, nil
}

// ViewerLikedSet returns which of the given targets the viewer has
// liked. An anonymous viewer yields the empty set: personalization
// degrades silently on public endpoints, it never fails the request.
func (s *EngagementService) ViewerLikedSet(ctx context.Context, viewerID string, targetIDs []uuid.UUID, kind model.TargetKind) (map[uuid.UUID]struct{}, error) {
	if viewerID == "" || len(targetIDs) == 0 {
		return map[uuid.UUID]struct{}{}, nil
	}
	return s.likes.LikedTargets(ctx, viewerID, targetIDs, kind)
}
