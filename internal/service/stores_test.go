package service

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/clipdeck/clipdeck-go/internal/apperr"
	"github.com/clipdeck/clipdeck-go/internal/model"
)

// In-memory store fakes. The like store enforces the (user, target,
// kind) uniqueness constraint the same way the database index does.

type memLikeStore struct {
	mu    sync.Mutex
	likes map[likeKey]model.Like
}

type likeKey struct {
	userID   string
	targetID uuid.UUID
	kind     model.TargetKind
}

func newMemLikeStore() *memLikeStore {
	return &memLikeStore{likes: make(map[likeKey]model.Like)}
}

func (s *memLikeStore) Exists(_ context.Context, userID string, targetID uuid.UUID, kind model.TargetKind) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.likes[likeKey{userID, targetID, kind}]
	return ok, nil
}

func (s *memLikeStore) Create(_ context.Context, like *model.Like, _ uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := likeKey{like.UserID, like.TargetID, like.TargetKind}
	if _, ok := s.likes[k]; ok {
		return false, nil
	}
	s.likes[k] = *like
	return true, nil
}

func (s *memLikeStore) Delete(_ context.Context, userID string, targetID uuid.UUID, kind model.TargetKind, _ uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.likes, likeKey{userID, targetID, kind})
	return nil
}

func (s *memLikeStore) CountByTarget(_ context.Context, targetID uuid.UUID, kind model.TargetKind) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.likes {
		if k.targetID == targetID && k.kind == kind {
			n++
		}
	}
	return n, nil
}

func (s *memLikeStore) LikedTargets(_ context.Context, userID string, targetIDs []uuid.UUID, kind model.TargetKind) (map[uuid.UUID]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	liked := make(map[uuid.UUID]struct{})
	for _, id := range targetIDs {
		if _, ok := s.likes[likeKey{userID, id, kind}]; ok {
			liked[id] = struct{}{}
		}
	}
	return liked, nil
}

func (s *memLikeStore) countAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.likes)
}

type memCommentStore struct {
	mu       sync.Mutex
	comments []model.Comment
}

func newMemCommentStore() *memCommentStore {
	return &memCommentStore{}
}

func (s *memCommentStore) Create(_ context.Context, c *model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = append(s.comments, *c)
	return nil
}

func (s *memCommentStore) FindByClip(_ context.Context, clipID uuid.UUID) ([]model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Comment
	for _, c := range s.comments {
		if c.ClipID == clipID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memCommentStore) CountByClip(_ context.Context, clipID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.comments {
		if c.ClipID == clipID {
			n++
		}
	}
	return n, nil
}

type memClipStore struct {
	mu    sync.Mutex
	clips map[uuid.UUID]model.Clip

	// cascade targets, mirroring the transactional delete
	likes    *memLikeStore
	comments *memCommentStore
}

func newMemClipStore(likes *memLikeStore, comments *memCommentStore) *memClipStore {
	return &memClipStore{
		clips:    make(map[uuid.UUID]model.Clip),
		likes:    likes,
		comments: comments,
	}
}

func (s *memClipStore) Create(_ context.Context, c *model.Clip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clips[c.ID] = *c
	return nil
}

func (s *memClipStore) FindByID(_ context.Context, id uuid.UUID) (*model.Clip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clips[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &c, nil
}

func (s *memClipStore) sorted() []model.Clip {
	out := make([]model.Clip, 0, len(s.clips))
	for _, c := range s.clips {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *memClipStore) FindPage(_ context.Context, offset, limit int) ([]model.Clip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.sorted()
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *memClipStore) CountAll(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clips), nil
}

func (s *memClipStore) FindByOwner(_ context.Context, ownerID string) ([]model.Clip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Clip
	for _, c := range s.sorted() {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *memClipStore) DeleteCascade(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	if _, ok := s.clips[id]; !ok {
		s.mu.Unlock()
		return apperr.ErrNotFound
	}
	delete(s.clips, id)
	s.mu.Unlock()

	s.comments.mu.Lock()
	kept := s.comments.comments[:0]
	for _, c := range s.comments.comments {
		if c.ClipID != id {
			kept = append(kept, c)
		}
	}
	s.comments.comments = kept
	s.comments.mu.Unlock()

	s.likes.mu.Lock()
	for k := range s.likes.likes {
		if k.targetID == id && k.kind == model.TargetClip {
			delete(s.likes.likes, k)
		}
	}
	s.likes.mu.Unlock()

	return nil
}
