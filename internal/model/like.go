package model

import (
	"time"

	"github.com/google/uuid"
)

// TargetKind disambiguates which entity a like applies to.
type TargetKind string

const (
	TargetClip    TargetKind = "clip"
	TargetComment TargetKind = "comment"
)

// Like is an independent (user, target, kind) record rather than a
// counter embedded on the target. At most one like exists per triple;
// the database unique index on (user_id, target_id, target_kind) is
// the correctness backstop under concurrent toggles.
type Like struct {
	ID         uuid.UUID  `json:"id"`
	UserID     string     `json:"userId"`
	TargetID   uuid.UUID  `json:"targetId"`
	TargetKind TargetKind `json:"targetKind"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ToggleLikeResponse is the API response after a like toggle.
type ToggleLikeResponse struct {
	IsLiked    bool `json:"isLiked"`
	LikesCount int  `json:"likesCount"`
}
