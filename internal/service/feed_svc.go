package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/clipdeck/clipdeck-go/internal/apperr"
	"github.com/clipdeck/clipdeck-go/internal/model"
)

const (
	minCommentLen = 1
	maxCommentLen = 500
)

// FeedService composes clip reads with live engagement aggregation
// into viewer-aware response payloads, and owns the like-toggle,
// comment and cascade-delete flows.
type FeedService struct {
	clips      ClipStore
	engagement *EngagementService
	likes      LikeStore
	comments   CommentStore
	cache      *CacheService
}

func NewFeedService(clips ClipStore, engagement *EngagementService, likes LikeStore, comments CommentStore, cache *CacheService) *FeedService {
	return &FeedService{
		clips:      clips,
		engagement: engagement,
		likes:      likes,
		comments:   comments,
		cache:      cache,
	}
}

// ListPage returns one page of the global feed, newest first, enriched
// with counts and (for a resolved viewer) per-item liked state.
func (s *FeedService) ListPage(ctx context.Context, page, limit int, viewerID string) (*model.FeedResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	total, err := s.clips.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	clips, err := s.clips.FindPage(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	enriched, err := s.enrichClips(ctx, clips, viewerID)
	if err != nil {
		return nil, err
	}

	totalPages := (total + limit - 1) / limit
	return &model.FeedResponse{
		Clips:      enriched,
		Page:       page,
		TotalPages: totalPages,
		TotalClips: total,
		HasMore:    page*limit < total,
	}, nil
}

// GetOne returns a single enriched clip, or apperr.ErrNotFound. The
// unpersonalized document is served cache-aside; liked state is always
// computed live for the viewer.
func (s *FeedService) GetOne(ctx context.Context, clipID uuid.UUID, viewerID string) (*model.EnrichedClip, error) {
	enriched, err := s.cachedClip(ctx, clipID)
	if err != nil {
		return nil, err
	}

	if viewerID != "" {
		liked, err := s.engagement.ViewerLikedSet(ctx, viewerID, []uuid.UUID{clipID}, model.TargetClip)
		if err != nil {
			return nil, err
		}
		_, enriched.IsLiked = liked[clipID]
	}
	return enriched, nil
}

// ListByAuthor returns all clips of one author, enriched but never
// personalized: author-scoped views are public.
func (s *FeedService) ListByAuthor(ctx context.Context, ownerID string) ([]model.EnrichedClip, error) {
	clips, err := s.clips.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.enrichClips(ctx, clips, "")
}

// ToggleLike is the single idempotent like primitive: an existing
// (viewer, clip) like is removed, a missing one is created. The store
// uniqueness constraint resolves concurrent duplicate toggles.
func (s *FeedService) ToggleLike(ctx context.Context, viewerID string, clipID uuid.UUID) (*model.ToggleLikeResponse, error) {
	if _, err := s.clips.FindByID(ctx, clipID); err != nil {
		return nil, err
	}

	exists, err := s.likes.Exists(ctx, viewerID, clipID, model.TargetClip)
	if err != nil {
		return nil, err
	}

	isLiked := false
	if exists {
		if err := s.likes.Delete(ctx, viewerID, clipID, model.TargetClip, clipID); err != nil {
			return nil, err
		}
	} else {
		like := &model.Like{
			ID:         uuid.New(),
			UserID:     viewerID,
			TargetID:   clipID,
			TargetKind: model.TargetClip,
			CreatedAt:  time.Now().UTC(),
		}
		// inserted=false means a concurrent toggle won the race; the
		// like exists either way.
		if _, err := s.likes.Create(ctx, like, clipID); err != nil {
			return nil, err
		}
		isLiked = true
	}

	count, err := s.likes.CountByTarget(ctx, clipID, model.TargetClip)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, clipID)

	return &model.ToggleLikeResponse{IsLiked: isLiked, LikesCount: count}, nil
}

// AddComment creates a comment on an existing clip. Content bounds are
// re-checked here even though handlers validate upstream.
func (s *FeedService) AddComment(ctx context.Context, viewerID string, clipID uuid.UUID, content string) (*model.Comment, error) {
	if len(content) < minCommentLen || len(content) > maxCommentLen {
		return nil, apperr.Validationf("comment must be %d-%d characters", minCommentLen, maxCommentLen)
	}

	if _, err := s.clips.FindByID(ctx, clipID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ID:        uuid.New(),
		ClipID:    clipID,
		OwnerID:   viewerID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.invalidate(ctx, clipID)

	return comment, nil
}

// ListComments returns a clip's comments enriched with like counts and
// optional per-viewer liked state (kind=comment).
func (s *FeedService) ListComments(ctx context.Context, clipID uuid.UUID, viewerID string) ([]model.EnrichedComment, error) {
	if _, err := s.clips.FindByID(ctx, clipID); err != nil {
		return nil, err
	}

	comments, err := s.comments.FindByClip(ctx, clipID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}
	liked, err := s.engagement.ViewerLikedSet(ctx, viewerID, ids, model.TargetComment)
	if err != nil {
		return nil, err
	}

	enriched := make([]model.EnrichedComment, len(comments))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range comments {
		g.Go(func() error {
			likes, _, err := s.engagement.CountsFor(gctx, c.ID, model.TargetComment)
			if err != nil {
				return err
			}
			_, isLiked := liked[c.ID]
			enriched[i] = model.EnrichedComment{
				Comment:    c,
				LikesCount: likes,
				IsLiked:    isLiked,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return enriched, nil
}

// DeleteClip removes a clip and cascades to its comments and clip-kind
// likes. Only the owner may delete.
func (s *FeedService) DeleteClip(ctx context.Context, ownerID string, clipID uuid.UUID) error {
	clip, err := s.clips.FindByID(ctx, clipID)
	if err != nil {
		return err
	}
	if clip.OwnerID != ownerID {
		return apperr.ErrForbidden
	}

	if err := s.clips.DeleteCascade(ctx, clipID); err != nil {
		return err
	}

	s.invalidate(ctx, clipID)
	return nil
}

// enrichClips fans out per-item count aggregation and joins the
// results back in feed order. The liked-set lookup is a single query
// for the whole page.
func (s *FeedService) enrichClips(ctx context.Context, clips []model.Clip, viewerID string) ([]model.EnrichedClip, error) {
	ids := make([]uuid.UUID, len(clips))
	for i, c := range clips {
		ids[i] = c.ID
	}
	liked, err := s.engagement.ViewerLikedSet(ctx, viewerID, ids, model.TargetClip)
	if err != nil {
		return nil, err
	}

	enriched := make([]model.EnrichedClip, len(clips))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range clips {
		g.Go(func() error {
			likes, comments, err := s.engagement.CountsFor(gctx, c.ID, model.TargetClip)
			if err != nil {
				return err
			}
			_, isLiked := liked[c.ID]
			enriched[i] = model.EnrichedClip{
				Clip:          c,
				LikesCount:    likes,
				CommentsCount: comments,
				IsLiked:       isLiked,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return enriched, nil
}

// cachedClip serves the unpersonalized enriched clip cache-aside.
func (s *FeedService) cachedClip(ctx context.Context, clipID uuid.UUID) (*model.EnrichedClip, error) {
	if s.cache != nil {
		cached, err := s.cache.GetClip(ctx, clipID.String())
		if err != nil {
			log.Printf("cache: get clip error: %v", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	clip, err := s.clips.FindByID(ctx, clipID)
	if err != nil {
		return nil, err
	}
	likes, comments, err := s.engagement.CountsFor(ctx, clipID, model.TargetClip)
	if err != nil {
		return nil, err
	}

	enriched := &model.EnrichedClip{
		Clip:          *clip,
		LikesCount:    likes,
		CommentsCount: comments,
	}

	if s.cache != nil {
		if err := s.cache.SetClip(ctx, clipID.String(), enriched); err != nil {
			log.Printf("cache: set clip error: %v", err)
		}
	}
	return enriched, nil
}

func (s *FeedService) invalidate(ctx context.Context, clipID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateClip(ctx, clipID.String()); err != nil {
		log.Printf("cache: invalidate clip error: %v", err)
	}
}
