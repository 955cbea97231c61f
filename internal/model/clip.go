package model

import (
	"time"

	"github.com/google/uuid"
)

// ClipMedia is the normalized metadata extracted from an external video
// reference: the canonical 11-character platform ID, display metadata
// and the trim window. EndSeconds is nil when no trim end was given;
// when both bounds are present, EndSeconds > StartSeconds. Duration
// reflects the trim length when a valid window exists, else the full
// source length.
type ClipMedia struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	Thumbnail    string `json:"thumbnail"`
	Duration     string `json:"duration"`
	StartSeconds int    `json:"startSeconds"`
	EndSeconds   *int   `json:"endSeconds,omitempty"`
}

// Clip is a user-authored pointer into an externally hosted video.
// Clips are immutable after creation; the only mutation is the owner's
// cascading delete.
type Clip struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	SourceURL   string    `json:"sourceUrl"`
	Media       ClipMedia `json:"media"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EnrichedClip is the response shape for feed and detail reads: the
// stored clip plus live-aggregated engagement. IsLiked is meaningful
// only when a viewer identity was resolved for the request.
type EnrichedClip struct {
	Clip
	LikesCount    int  `json:"likesCount"`
	CommentsCount int  `json:"commentsCount"`
	IsLiked       bool `json:"isLiked"`
}

// CreateClipRequest is the API request body for submitting a clip.
type CreateClipRequest struct {
	YoutubeURL  string `json:"youtubeUrl"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartTime   string `json:"startTime,omitempty"`
	EndTime     string `json:"endTime,omitempty"`
}

// FeedResponse is the API response for a paginated clip feed.
type FeedResponse struct {
	Clips      []EnrichedClip `json:"clips"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	TotalClips int            `json:"totalClips"`
	HasMore    bool           `json:"hasMore"`
}
