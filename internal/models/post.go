package models

import (
	"time"

	"gorm.io/datatypes"
)

// Post is an uploaded AI-generated image.
// Approved is the moderation flag: nil pending, true approved, false rejected.
type Post struct {
	ID              uint                        `json:"id" gorm:"primaryKey"`
	UserID          uint                        `json:"user_id" gorm:"index"`
	User            User                        `json:"-" gorm:"foreignKey:UserID"`
	ImageKey        string                      `json:"-" gorm:"size:255"`
	ImageName       string                      `json:"image_name"`
	ImageAge        string                      `json:"image_age"`
	ImageBirthplace string                      `json:"image_birthplace"`
	Prompt          string                      `json:"prompt" gorm:"type:text"`
	HashTags        datatypes.JSONSlice[string] `json:"hash_tags"`
	Approved        *bool                       `json:"approved" gorm:"index"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}

// ModerationState is the tri-state reading of Post.Approved
type ModerationState string

const (
	ModerationPending  ModerationState = "pending"
	ModerationApproved ModerationState = "approved"
	ModerationRejected ModerationState = "rejected"
)

func (p *Post) ModerationState() ModerationState {
	switch {
	case p.Approved == nil:
		return ModerationPending
	case *p.Approved:
		return ModerationApproved
	default:
		return ModerationRejected
	}
}

// SerializedPost is the feed card payload
type SerializedPost struct {
	ID              uint         `json:"id"`
	Prompt          string       `json:"prompt"`
	ImageURL        string       `json:"image_url"`
	Approved        *bool        `json:"approved"`
	LikeCount       int64        `json:"like_count"`
	SuperLikeCount  int64        `json:"super_like_count"`
	UserID          uint         `json:"user_id"`
	HashTags        []string     `json:"hash_tags"`
	ImageName       string       `json:"image_name"`
	ImageAge        string       `json:"image_age"`
	ImageBirthplace string       `json:"image_birthplace"`
	User            UserSummary  `json:"user"`
	SuperLikeUser   *UserSummary `json:"super_like_user"`
}

type CreatePostRequest struct {
	ImageKey        string   `json:"image_key" validate:"required,max=255"`
	ImageName       string   `json:"image_name" validate:"required,max=100"`
	ImageAge        string   `json:"image_age" validate:"required,max=10"`
	ImageBirthplace string   `json:"image_birthplace" validate:"omitempty,max=100"`
	Prompt          string   `json:"prompt" validate:"required,max=4000"`
	HashTags        []string `json:"hash_tags" validate:"omitempty,max=30,dive,min=1,max=50"`
}
