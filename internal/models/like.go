package models

import "time"

// LikeType is the current state of a (user, post) like row
type LikeType string

const (
	LikeTypeLike      LikeType = "like"
	LikeTypeSuperLike LikeType = "super_like"
	LikeTypeUnlike    LikeType = "unlike"
)

func (t LikeType) Valid() bool {
	switch t {
	case LikeTypeLike, LikeTypeSuperLike, LikeTypeUnlike:
		return true
	}
	return false
}

// Positive reports whether the state notifies the post author.
func (t LikeType) Positive() bool {
	return t == LikeTypeLike || t == LikeTypeSuperLike
}

// Like holds at most one row per (user, post); LikeType is overwritten in place.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_like_user_post"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_like_user_post"`
	LikeType  LikeType  `json:"like_type" gorm:"size:20;index"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SetLikeRequest struct {
	LikeType LikeType `json:"like_type" validate:"required,oneof=like super_like unlike"`
}
