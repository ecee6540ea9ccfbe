package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is created on first sign-in through the identity provider
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FirebaseUID string    `json:"-" gorm:"uniqueIndex;size:128"`
	Email       string    `json:"email" gorm:"index"`
	Name        string    `json:"name"`
	Image       string    `json:"-"`                 // avatar URL handed out by the identity provider
	ImageKey    string    `json:"-" gorm:"size:255"` // object-storage reference, "bucket/key"
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserSummary is the compact author/actor shape embedded in other payloads
type UserSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// UserProfile is a user as seen by a viewer
type UserProfile struct {
	UserSummary
	IsFollowee              bool      `json:"is_followee"`
	IsFollower              bool      `json:"is_follower"`
	UnreadNotificationCount *int64    `json:"unread_notification_count,omitempty"`
	PostCount               int64     `json:"post_count"`
	LikeCount               int64     `json:"like_count"`
	SuperLikeCount          int64     `json:"super_like_count"`
	FollowerCount           int64     `json:"follower_count"`
	FollowingCount          int64     `json:"following_count"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// FollowUser is one row of a follower/followee listing
type FollowUser struct {
	UserSummary
	IsFollowee bool      `json:"is_followee"`
	IsFollower bool      `json:"is_follower"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Identity is what the identity provider tells us about a signed-in user
type Identity struct {
	FirebaseUID string
	Email       string
	Name        string
	Picture     string
}

type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	ImageKey *string `json:"image_key,omitempty" validate:"omitempty,max=255"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
