package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ModerationResult is one image-analysis verdict stored in MongoDB
type ModerationResult struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PostID       uint               `json:"post_id" bson:"post_id"`
	ImageKey     string             `json:"image_key" bson:"image_key"`
	Score        float64            `json:"score" bson:"score"`
	Approved     bool               `json:"approved" bson:"approved"`
	ModelVersion string             `json:"model_version" bson:"model_version"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}

type RecordModerationRequest struct {
	Score        float64 `json:"score" validate:"gte=0,lte=1"`
	Approved     *bool   `json:"approved" validate:"required"`
	ModelVersion string  `json:"model_version" validate:"required,max=64"`
}
