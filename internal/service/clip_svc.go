package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clipdeck/clipdeck-go/internal/apperr"
	"github.com/clipdeck/clipdeck-go/internal/extractor"
	"github.com/clipdeck/clipdeck-go/internal/model"
)

const (
	minTitleLen       = 1
	maxTitleLen       = 100
	maxDescriptionLen = 500
)

// MediaExtractor normalizes a video URL plus trim window into ClipMedia.
// Satisfied by extractor.Extractor; tests use a fake.
type MediaExtractor interface {
	Extract(ctx context.Context, rawURL, startText, endText string) (*model.ClipMedia, error)
}

var _ MediaExtractor = (*extractor.Extractor)(nil)

// ClipService owns the ingestion pipeline: validate the submission,
// extract normalized media metadata, persist the clip.
type ClipService struct {
	clips     ClipStore
	extractor MediaExtractor
}

func NewClipService(clips ClipStore, ext MediaExtractor) *ClipService {
	return &ClipService{clips: clips, extractor: ext}
}

// Create validates and ingests a clip submission for the given owner.
func (s *ClipService) Create(ctx context.Context, ownerID string, req model.CreateClipRequest) (*model.Clip, error) {
	title := strings.TrimSpace(req.Title)
	if len(title) < minTitleLen || len(title) > maxTitleLen {
		return nil, apperr.Validationf("title must be %d-%d characters", minTitleLen, maxTitleLen)
	}

	description := strings.TrimSpace(req.Description)
	if len(description) > maxDescriptionLen {
		return nil, apperr.Validationf("description must be at most %d characters", maxDescriptionLen)
	}

	if strings.TrimSpace(req.YoutubeURL) == "" {
		return nil, apperr.Validationf("youtubeUrl is required")
	}

	media, err := s.extractor.Extract(ctx, req.YoutubeURL, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	clip := &model.Clip{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		SourceURL:   req.YoutubeURL,
		Media:       *media,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.clips.Create(ctx, clip); err != nil {
		return nil, err
	}
	return clip, nil
}
