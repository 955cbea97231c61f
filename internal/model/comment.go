package model

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a user comment on a clip. Comments have no edit or
// individual delete operation; they are removed en masse when their
// parent clip is deleted.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	ClipID    uuid.UUID `json:"clipId"`
	OwnerID   string    `json:"ownerId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// EnrichedComment is the response shape for comment listings: the
// stored comment plus live like aggregation for the viewer.
type EnrichedComment struct {
	Comment
	LikesCount int  `json:"likesCount"`
	IsLiked    bool `json:"isLiked"`
}

// CreateCommentRequest is the API request body for posting a comment.
type CreateCommentRequest struct {
	Content string `json:"content"`
}
